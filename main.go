package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tanks/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	matchFile := flag.String("match", "match.yaml", "match file in prefabs/")
	players := flag.Int("players", 2, "number of tanks, 2 to 4")
	bots := flag.String("bots", "", "comma separated player numbers driven by bots, e.g. \"3,4\"")
	rounds := flag.Int("rounds", 0, "rounds to win, overrides the match file")
	watch := flag.Bool("watch", false, "reload prefabs and bot scripts when they change")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	botPlayers, err := parsePlayerList(*bots)
	if err != nil {
		log.Fatal("bad -bots", "err", err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		MatchFile:   *matchFile,
		Players:     *players,
		Bots:        botPlayers,
		RoundsToWin: *rounds,
		Watch:       *watch,
		Debug:       *debug,
	})
	if err != nil {
		log.Fatal("start game", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("tanks")
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal("run game", "err", err)
	}
}

func parsePlayerList(s string) (map[int]bool, error) {
	out := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out[n] = true
	}
	return out, nil
}
