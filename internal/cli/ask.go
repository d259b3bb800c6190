// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler.
//
// Handles "alice ask" which sends one question to the knowledge base and
// streams the answer to stdout.
//
// Examples:
//   alice ask "这个视频讲了什么?"
//   alice ask --plain "summarize the cooking video"
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/alice-tui/internal/api"
)

// RunAsk executes a one-shot question and returns the process exit code.
func RunAsk(client *api.Client, args Args) int {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		fmt.Fprintln(os.Stderr, errStyle.Render("usage: alice ask \"question\""))
		return 2
	}

	ctx := context.Background()
	conv, err := client.CreateConversation(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("cannot start a conversation: "+err.Error()))
		return 1
	}

	var content strings.Builder
	var streamErr string
	interactive := term.IsTerminal(int(os.Stdout.Fd())) && !args.Plain

	err = client.SendMessageStream(ctx, conv.ID, question, func(ev api.StreamEvent) {
		switch ev.Type {
		case api.EventThinking:
			if args.Verbose {
				fmt.Fprint(os.Stderr, thinkingStyle.Render(ev.Content))
			}
		case api.EventContent:
			content.WriteString(ev.Content)
			if !interactive {
				fmt.Print(ev.Content)
			}
		case api.EventError:
			streamErr = ev.Error
		}
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("stream failed: "+err.Error()))
		return 1
	}
	if streamErr != "" {
		fmt.Fprintln(os.Stderr, errStyle.Render("backend error: "+streamErr))
		return 1
	}

	if interactive {
		fmt.Print(renderMarkdown(content.String()))
	} else if content.Len() > 0 {
		fmt.Println()
	}
	return 0
}

// renderMarkdown renders answer text for a terminal, falling back to the
// raw text when glamour cannot be set up.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
