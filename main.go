package main

import (
	"flag"
	"fmt"
	"os"
	"slidis/config"
	"slidis/redis/server"
	"slidis/tcp"
	"slidis/utils/logs"
)

const banner = `
##################################################
                    slidis
##################################################
`

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func main() {
	print(banner)
	confName := flag.String("conf", "slidis.conf", "config file path")
	flag.Parse()
	if fileExists(*confName) {
		config.SetupConfig(*confName)
	}
	log, err := logs.LoadLog(config.Properties.LogDir, logs.ServerLogPath)
	if err != nil {
		panic(err)
	}
	p := config.Properties
	log.Debug.Println(fmt.Sprintf("ip: %s port: %d", p.Bind, p.Port))
	log.Debug.Println(fmt.Sprintf("RuntimeID: %s MaxClients: %d AbsPath: %s", p.RuntimeID, p.MaxClients, p.AbsPath))
	err = tcp.ListenAndServeWithSignal(&tcp.Config{
		Address: p.BindAddr,
		Name:    "slidis",
	}, server.MakeHandler())
	if err != nil {
		log.Error.Println(err)
	}
	log.Info.Println("server close...")
}
