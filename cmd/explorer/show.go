package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/trendlens/trendlens/internal/store"
	"github.com/trendlens/trendlens/internal/types"
)

func showCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show a trending tab",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tab",
				Usage: "Tab to show: papers, models, datasets, spaces",
				Value: "papers",
			},
			&cli.StringFlag{
				Name:  "time-frame",
				Usage: "Ranking window for papers: today, three_days, week, month",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tab := store.Tab(cmd.String("tab"))
			if !tab.Valid() {
				return fmt.Errorf("unknown tab %q", cmd.String("tab"))
			}

			fetcher := store.NewAPIFetcher(cmd.String("server"))
			prefs := store.NewFilePrefs(prefsPath())
			notifier := store.NotifierFunc(func(msg string) {
				log.Error(msg)
			})

			s := store.New(fetcher, prefs, notifier)

			if raw := cmd.String("time-frame"); raw != "" {
				tf := types.TimeFrame(raw)
				if !tf.Valid() {
					return fmt.Errorf("unknown time frame %q", raw)
				}
				s.SetTimeFrame(ctx, tf)
				s.Wait()
			}

			s.SelectTab(ctx, tab)
			s.Wait()

			snap := s.Snapshot()
			if snap.Phase == store.PhaseErrored {
				return fmt.Errorf("fetch failed: %s", snap.Err)
			}

			render(snap)
			return nil
		},
	}
}

func prefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trendlens_timeframe"
	}

	return filepath.Join(home, ".trendlens_timeframe")
}

func render(snap store.Snapshot) {
	fmt.Println(snap.Title)
	fmt.Println()

	switch snap.Tab {
	case store.TabModels:
		for i, m := range snap.Models {
			fmt.Printf("%2d. %s  ↓%d ♥%d\n", i+1, m.ModelID, m.Downloads, m.Likes)
		}
	case store.TabDatasets:
		for i, d := range snap.Datasets {
			fmt.Printf("%2d. %s (%s)  ↓%d ♥%d\n", i+1, d.FormattedTitle, d.Author, d.Downloads, d.Likes)
		}
	case store.TabSpaces:
		for i, sp := range snap.Spaces {
			fmt.Printf("%2d. %s %s by %s  ♥%d\n", i+1, sp.Emoji, sp.Title, sp.Author, sp.Likes)
		}
	default:
		for i, p := range snap.Papers {
			fmt.Printf("%2d. %s  ▲%d 💬%d (%s)\n", i+1, p.Title, p.Upvotes, p.Comments, p.SubmittedBy)
		}
	}

	if snap.ActiveCount() == 0 {
		fmt.Println("nothing trending right now")
	}
}
