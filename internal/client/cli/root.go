package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kinshipapp/kinship/internal/client/session"
)

func (a *App) prompt() string {
	snap := a.session.Snapshot()
	if snap.User != nil && snap.User.Name != "" {
		return fmt.Sprintf("kinship (%s) > ", snap.User.Name)
	}
	return "kinship > "
}

// Root runs the interactive command loop. The visible command set depends on
// the current session flow.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Kinship (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(a.prompt())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if !commandAllowed(a.session.Flow(), cmd) {
			fmt.Println("Command not available right now. Type 'help' for what you can do.")
			continue
		}

		switch cmd {
		case "help":
			a.printHelp()

		case "login":
			_ = a.Login(ctx)
		case "verify":
			_ = a.Verify(ctx)
		case "onboard":
			_ = a.Onboard(ctx)

		case "feed":
			_ = a.ShowFeed(ctx)
		case "like":
			if len(args) == 0 {
				fmt.Println("Usage: like <profile-id>")
				continue
			}
			_ = a.Like(ctx, args[0])
		case "pass":
			if len(args) == 0 {
				fmt.Println("Usage: pass <profile-id>")
				continue
			}
			_ = a.Pass(ctx, args[0])

		case "matches":
			_ = a.ShowMatches(ctx)
		case "chat":
			if len(args) == 0 {
				fmt.Println("Usage: chat <match-id>")
				continue
			}
			a.Chat(ctx, args[0])

		case "profile":
			_ = a.ShowProfile(ctx)
		case "edit":
			_ = a.EditProfile(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// commandAllowed reports whether cmd may be dispatched in the given flow.
// The visible command surface follows the navigation projection: sign-in
// commands before authentication, profile setup until onboarded, and the
// full feed/matches/chat surface after that.
func commandAllowed(f session.Flow, cmd string) bool {
	switch cmd {
	case "help", "exit", "quit":
		return true
	}

	switch f {
	case session.FlowAuth:
		return cmd == "login" || cmd == "verify"
	case session.FlowOnboarding:
		return cmd == "onboard" || cmd == "logout"
	case session.FlowMain:
		switch cmd {
		case "feed", "like", "pass", "matches", "chat", "profile", "edit", "logout":
			return true
		}
	}
	return false
}

func (a *App) printHelp() {
	switch a.session.Flow() {
	case session.FlowAuth:
		fmt.Println("Available commands: login, verify, exit")
	case session.FlowOnboarding:
		fmt.Println("Available commands: onboard, logout, exit")
	case session.FlowMain:
		fmt.Println("Available commands: feed, like <id>, pass <id>, matches, chat <id>, profile, edit, logout, exit")
	default:
		fmt.Println("Available commands: exit")
	}
}
