package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const ServerLogPath = "ServerLogPath"

type LogConf struct {
	ServiceName string
	Debug       *log.Logger
	Info        *log.Logger
	Warn        *log.Logger
	Error       *log.Logger
}

// LOG is the process wide logger, stdout only until LoadLog wires the
// log file in.
var LOG = makeConf("default", os.Stdout)

func makeConf(sName string, w io.Writer) *LogConf {
	return &LogConf{
		ServiceName: sName,
		Debug:       log.New(w, "[debug]", log.Ldate|log.Ltime|log.Lshortfile),
		Info:        log.New(w, "[info]", log.Ldate|log.Ltime|log.Lshortfile),
		Warn:        log.New(w, "[warn]", log.Ldate|log.Ltime|log.Lshortfile),
		Error:       log.New(w, "[error]", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// LoadLog opens the dated log file under dir and replaces LOG with a
// multi-writer conf (stdout plus file).
func LoadLog(dir string, sName string) (*LogConf, error) {
	path := filepath.Join(dir, sName)
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return nil, err
	}
	format := time.Now().Format("2006_01_02")
	logFile, err := os.OpenFile(filepath.Join(path, format+".txt"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND, os.ModePerm)
	if err != nil {
		return nil, err
	}
	conf := makeConf(sName, io.MultiWriter(os.Stdout, logFile))
	LOG = conf
	return conf, nil
}
