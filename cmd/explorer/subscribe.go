package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
)

func subscribeCmd() *cli.Command {
	return &cli.Command{
		Name:  "subscribe",
		Usage: "Subscribe an email address to the newsletter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Usage:    "Email address to subscribe",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			payload, err := json.Marshal(map[string]string{
				"email": cmd.String("email"),
			})
			if err != nil {
				return err
			}

			target := cmd.String("server") + "/api/subscribe"
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			client := &http.Client{Timeout: 15 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var body struct {
				Message string `json:"message"`
				Error   string `json:"error"`
			}
			if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil {
				return fmt.Errorf("unexpected response from server: %w", err)
			}

			if body.Error != "" {
				return fmt.Errorf("%s", body.Error)
			}

			fmt.Println(body.Message)
			return nil
		},
	}
}
