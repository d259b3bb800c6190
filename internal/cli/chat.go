// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler.
//
// Handles "alice chat", a readline REPL against the knowledge base for
// terminals where the full TUI is unwanted (ssh, scripts, screen readers).
//
// Interactive commands:
//   /help            Show available commands
//   /new             Start a new conversation
//   /list            List recent conversations
//   /open <id>       Continue an existing conversation
//   /title <text>    Rename the current conversation
//   /export [fmt]    Export the conversation to the current directory
//   /quit            Exit (also Ctrl+D)
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
	"github.com/jeranaias/alice-tui/internal/export"
	"github.com/jeranaias/alice-tui/internal/model"
	"github.com/jeranaias/alice-tui/internal/storage"
	"github.com/jeranaias/alice-tui/internal/util"
)

// historyFile is the REPL history file name under the config dir.
const historyFile = "history"

// RunChat runs the interactive REPL and returns the process exit code.
func RunChat(client *api.Client, args Args) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := loadHistory(line)
	defer saveHistory(line, historyPath)

	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	if !args.Quiet {
		fmt.Println(headingStyle.Render("alice chat"))
		fmt.Println(infoStyle.Render("/help for commands, /quit or Ctrl+D to exit"))
		fmt.Println()
	}

	ctx := context.Background()
	var conversationID int64

	for {
		input, err := line.Prompt(promptStyle.Render("> "))
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session.
			fmt.Println()
			return 0
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			done, newID := handleChatCommand(ctx, client, cache, conversationID, input)
			if done {
				return 0
			}
			conversationID = newID
			continue
		}

		if conversationID == 0 {
			conv, err := client.CreateConversation(ctx, nil)
			if err != nil {
				fmt.Println(errStyle.Render("cannot start a conversation: " + err.Error()))
				continue
			}
			conversationID = conv.ID
		}

		if err := streamAnswer(ctx, client, conversationID, input, args.Verbose); err != nil {
			fmt.Println(errStyle.Render(err.Error()))
		}
	}
}

// streamAnswer sends one message and prints the reply as it streams.
func streamAnswer(ctx context.Context, client *api.Client, conversationID int64, content string, verbose bool) error {
	var streamErr string
	printed := false
	err := client.SendMessageStream(ctx, conversationID, content, func(ev api.StreamEvent) {
		switch ev.Type {
		case api.EventThinking:
			if verbose {
				fmt.Print(thinkingStyle.Render(ev.Content))
			}
		case api.EventContent:
			fmt.Print(ev.Content)
			printed = true
		case api.EventError:
			streamErr = ev.Error
		}
	})
	if printed {
		fmt.Println()
		fmt.Println()
	}
	if err != nil {
		return fmt.Errorf("stream failed: %w", err)
	}
	if streamErr != "" {
		return fmt.Errorf("backend error: %s", streamErr)
	}
	return nil
}

// handleChatCommand executes a /command. It returns (true, _) to quit and
// the conversation id to continue with otherwise.
func handleChatCommand(ctx context.Context, client *api.Client, cache *storage.Cache, current int64, input string) (bool, int64) {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit", "/q", "/exit":
		return true, current

	case "/help", "/h":
		fmt.Println(infoStyle.Render("/new  /list  /open <id>  /title <text>  /export [format]  /quit"))
		return false, current

	case "/new":
		fmt.Println(infoStyle.Render("started a new conversation"))
		return false, 0

	case "/list":
		listConversations(ctx, client, cache)
		return false, current

	case "/open":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			fmt.Println(errStyle.Render("usage: /open <id>"))
			return false, current
		}
		detail, err := client.GetConversation(ctx, id)
		if err != nil {
			fmt.Println(errStyle.Render("cannot open conversation: " + err.Error()))
			return false, current
		}
		conv := model.FromAPIConversationDetail(*detail)
		fmt.Println(infoStyle.Render("continuing: " + conv.DisplayTitle()))
		for _, msg := range conv.Messages {
			fmt.Println(promptStyle.Render(msg.Role.DisplayName()+":") + " " + util.TruncateRunes(msg.Content, 120))
		}
		return false, id

	case "/export":
		if current == 0 {
			fmt.Println(errStyle.Render("nothing to export yet"))
			return false, current
		}
		exporter, err := export.ForFormat(rest)
		if err != nil {
			fmt.Println(errStyle.Render(err.Error()))
			return false, current
		}
		detail, err := client.GetConversation(ctx, current)
		if err != nil {
			fmt.Println(errStyle.Render("cannot load conversation: " + err.Error()))
			return false, current
		}
		path, err := export.ToFile(model.FromAPIConversationDetail(*detail), exporter, ".")
		if err != nil {
			fmt.Println(errStyle.Render(err.Error()))
			return false, current
		}
		fmt.Println(okStyle.Render("exported to " + path))
		return false, current

	case "/title":
		if current == 0 || rest == "" {
			fmt.Println(errStyle.Render("usage: /title <text> (inside a conversation)"))
			return false, current
		}
		if _, err := client.RenameConversation(ctx, current, rest); err != nil {
			fmt.Println(errStyle.Render("rename failed: " + err.Error()))
		}
		return false, current

	default:
		fmt.Println(errStyle.Render("unknown command " + cmd + ", /help for help"))
		return false, current
	}
}

// listConversations prints recent conversations, falling back to the
// local mirror when the backend is unreachable.
func listConversations(ctx context.Context, client *api.Client, cache *storage.Cache) {
	conversations, err := client.ListConversations(ctx)
	if err != nil {
		if cache == nil {
			fmt.Println(errStyle.Render(err.Error()))
			return
		}
		cached, cacheErr := cache.LoadConversations(ctx)
		if cacheErr != nil || len(cached) == 0 {
			fmt.Println(errStyle.Render(err.Error()))
			return
		}
		if when, ok := cache.LastSync(ctx, storage.KindConversations); ok {
			fmt.Println(warnStyle.Render("backend unreachable, local copy from " + when.Format("2006-01-02 15:04")))
		}
		conversations = cached
	} else if cache != nil {
		// Best effort mirror refresh.
		_ = cache.SaveConversations(ctx, conversations)
	}

	for _, c := range model.FromAPIConversations(conversations) {
		fmt.Printf("%6d  %s %s\n", c.ID,
			util.PadRight(util.TruncateRunes(c.DisplayTitle(), 40), 42),
			infoStyle.Render(util.IntToString(c.MessageCount)+" messages"))
	}
}

func openCache() *storage.Cache {
	path, err := config.CachePath()
	if err != nil {
		return nil
	}
	cache, err := storage.Open(path)
	if err != nil {
		return nil
	}
	return cache
}

func loadHistory(line *liner.State) string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, historyFile)
	if f, err := os.Open(path); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return path
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	line.WriteHistory(f)
	f.Close()
}
