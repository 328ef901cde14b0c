package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	if a.Mode == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.Mode)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to myjar CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
