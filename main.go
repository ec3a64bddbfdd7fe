package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable the debug overlay and development logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	matchName := flag.String("match", "match.yaml", "match prefab under prefabs/")
	arenaName := flag.String("arena", "", "override the match arena (name under prefabs/arenas/)")
	watch := flag.Bool("watch", false, "reload prefabs and scripts when they change on disk")
	strict := flag.Bool("strict", false, "panic on collision resolution errors")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(context.Background(), logger, Options{
		Match:  *matchName,
		Arena:  *arenaName,
		Debug:  *debug,
		Strict: *strict,
		Watch:  *watch,
	})
	if err != nil {
		logger.Fatal("load match", zap.String("match", *matchName), zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("fighter")
	ebiten.SetTPS(game.match.Spec.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
