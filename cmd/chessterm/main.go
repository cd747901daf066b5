package main

import (
	"flag"
	"log"
	"os"

	"github.com/earther/chesscore/pkg"
	"github.com/earther/chesscore/pkg/gui"
)

func main() {
	addr := flag.String("addr", pkg.ServerPort, "server address")
	matchId := flag.String("match", "", "match to join, empty for a fresh one")
	name := flag.String("name", "", "player name")
	themeName := flag.String("theme", "basic", "board theme")
	vsEngine := flag.Bool("engine", false, "play the built-in engine instead of a human")
	offline := flag.Bool("offline", false, "play the engine locally without a server")
	skill := flag.Int("skill", 20, "engine strength 0-20")
	logPath := flag.String("log", "./client.log", "path to log file")
	flag.Parse()

	pkg.InitLog(*logPath, "CLIENT: ")
	log.Println("New Client")

	theme, err := gui.FindTheme(*themeName)
	if err != nil {
		theme = gui.ThemeBasic
	}

	cl := pkg.NewClient(theme)
	if *offline {
		cl.PlayEngine(*skill)
	} else {
		join := pkg.MessageJoin{
			Name:     *name,
			MatchId:  *matchId,
			VsEngine: *vsEngine,
			Skill:    *skill,
		}
		if err := cl.Connect(*addr, join); err != nil {
			log.Printf("Cannot reach server: %v", err)
			os.Exit(1)
		}
	}

	if err := cl.Run(); err != nil {
		log.Panic(err)
	}
	cl.Quit()
}
