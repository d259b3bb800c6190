// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli_test.go - Tests for CLI argument parsing.
package cli

import "testing"

func TestParseNoArgsOpensTUI(t *testing.T) {
	cmd, _ := parseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
}

func TestParseAsk(t *testing.T) {
	cmd, args := parseArgs([]string{"ask", "what", "is", "this"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.Query != "what is this" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseBareWordsBecomeQuestion(t *testing.T) {
	cmd, args := parseArgs([]string{"how", "do", "I", "cook", "rice"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.Query != "how do I cook rice" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseImport(t *testing.T) {
	cmd, args := parseArgs([]string{"import", "BV1xx411c7mD"})
	if cmd != CmdImport {
		t.Fatalf("cmd = %v, want CmdImport", cmd)
	}
	if args.URL != "BV1xx411c7mD" {
		t.Errorf("url = %q", args.URL)
	}
}

func TestParseExport(t *testing.T) {
	cmd, args := parseArgs([]string{"export", "42", "json"})
	if cmd != CmdExport {
		t.Fatalf("cmd = %v, want CmdExport", cmd)
	}
	if len(args.Raw) != 2 || args.Raw[0] != "42" || args.Raw[1] != "json" {
		t.Errorf("raw = %v", args.Raw)
	}
}

func TestParseFlags(t *testing.T) {
	cmd, args := parseArgs([]string{"--plain", "-v", "ask", "hi"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if !args.Plain || !args.Verbose {
		t.Errorf("flags not parsed: %+v", args)
	}
	if args.Query != "hi" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseHelpAndVersion(t *testing.T) {
	if cmd, _ := parseArgs([]string{"--help"}); cmd != CmdHelp {
		t.Errorf("--help: cmd = %v", cmd)
	}
	if cmd, _ := parseArgs([]string{"help"}); cmd != CmdHelp {
		t.Errorf("help: cmd = %v", cmd)
	}
	if cmd, _ := parseArgs([]string{"--version"}); cmd != CmdVersion {
		t.Errorf("--version: cmd = %v", cmd)
	}
	if cmd, _ := parseArgs([]string{"version"}); cmd != CmdVersion {
		t.Errorf("version: cmd = %v", cmd)
	}
}

func TestParseAuthCommands(t *testing.T) {
	if cmd, _ := parseArgs([]string{"login"}); cmd != CmdLogin {
		t.Errorf("login: cmd = %v", cmd)
	}
	if cmd, _ := parseArgs([]string{"logout"}); cmd != CmdLogout {
		t.Errorf("logout: cmd = %v", cmd)
	}
}

func TestParseChatAndStatus(t *testing.T) {
	if cmd, _ := parseArgs([]string{"chat"}); cmd != CmdChat {
		t.Errorf("chat: cmd = %v", cmd)
	}
	if cmd, _ := parseArgs([]string{"status"}); cmd != CmdStatus {
		t.Errorf("status: cmd = %v", cmd)
	}
}
