package main

import (
	"flag"
	"log"

	"github.com/earther/chesscore/pkg"
)

func main() {
	addr := flag.String("addr", pkg.ServerPort, "tcp address for game connections")
	sshAddr := flag.String("ssh", "", "ssh address for the terminal front, empty to disable")
	clientPath := flag.String("client", "chessterm", "client binary the ssh front executes")
	logPath := flag.String("log", "./server.log", "path to log file")
	flag.Parse()

	pkg.InitLog(*logPath, "SERVER: ")
	log.Println("Server started")

	s := pkg.NewServer(*clientPath)
	if *sshAddr != "" {
		go func() {
			if err := s.ServeSsh(*sshAddr); err != nil {
				log.Panic(err)
			}
		}()
	}
	if err := s.ListenAndServe(*addr); err != nil {
		log.Panic(err)
	}
}
