// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - Login and logout command handlers.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/alice-tui/internal/api"
	"github.com/jeranaias/alice-tui/internal/config"
)

// RunLogin prompts for credentials, signs in, and stores the token
// encrypted under ~/.alice. Returns the process exit code.
func RunLogin(client *api.Client, args Args) int {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("failed to read email"))
		return 1
	}
	email = strings.TrimSpace(email)

	fmt.Print("password: ")
	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("failed to read password"))
			return 1
		}
		password = string(raw)
	} else {
		// Piped input, e.g. in scripts.
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, errStyle.Render("failed to read password"))
			return 1
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, errStyle.Render("email and password are required"))
		return 2
	}

	resp, err := client.Login(context.Background(), email, password)
	if err != nil {
		if api.IsUnauthorized(err) {
			fmt.Fprintln(os.Stderr, errStyle.Render("invalid email or password"))
		} else {
			fmt.Fprintln(os.Stderr, errStyle.Render("login failed: "+err.Error()))
		}
		return 1
	}
	if err := config.SaveToken(resp.AccessToken); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("failed to store token: "+err.Error()))
		return 1
	}

	if user, err := client.Me(context.Background()); err == nil {
		fmt.Println(okStyle.Render("signed in as " + user.Username))
	} else {
		fmt.Println(okStyle.Render("signed in"))
	}
	return 0
}

// RunLogout forgets the stored token.
func RunLogout(args Args) int {
	if err := config.ClearToken(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("failed to clear token: "+err.Error()))
		return 1
	}
	if !args.Quiet {
		fmt.Println(okStyle.Render("signed out"))
	}
	return 0
}
