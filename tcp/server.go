package tcp

import (
	"context"
	"net"
	"os"
	"os/signal"
	"slidis/interface/tcp"
	"slidis/utils/logs"
	"sync"
	"syscall"
	"time"
)

type Config struct {
	Address    string        `conf:"address"`
	MaxConnect uint32        `conf:"max-connect"`
	Timeout    time.Duration `conf:"timeout"`
	Name       string
}

// ListenAndServeWithSignal serves until SIGHUP/SIGQUIT/SIGTERM/SIGINT.
func ListenAndServeWithSignal(cfg *Config, handler tcp.Handler) error {
	closeChan := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		switch sig {
		case syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT:
			closeChan <- struct{}{}
		}
	}()
	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return err
	}
	logs.LOG.Info.Println(cfg.Name, "listening at", cfg.Address)
	ListenAndServe(listener, handler, closeChan)
	return nil
}

// ListenAndServe accepts clients until closeChan fires or accept fails.
func ListenAndServe(listener net.Listener, handler tcp.Handler, closeChan <-chan struct{}) {
	errCh := make(chan error, 1)
	defer close(errCh)
	go func() {
		select {
		case <-closeChan:
			logs.LOG.Info.Println("shutdown signal received")
		case err := <-errCh:
			logs.LOG.Error.Println("accept error:", err)
		}
		_ = listener.Close()
		_ = handler.Close()
	}()

	ctx := context.Background()
	var waitDone sync.WaitGroup
	for {
		conn, err := listener.Accept()
		if err != nil {
			errCh <- err
			break
		}
		logs.LOG.Debug.Println("accepted connection from", conn.RemoteAddr())
		waitDone.Add(1)
		go func() {
			defer waitDone.Done()
			handler.Handle(ctx, conn)
		}()
	}
	waitDone.Wait()
}
