package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Chat enters the conversation view for matchID. While the view is open a
// background poller keeps the conversation cache warm; it is cancelled on
// every way out of the loop. Lines typed at the prompt are sent as messages;
// "/refresh" reloads the conversation and "/back" leaves the view.
func (a *App) Chat(ctx context.Context, matchID string) {
	snap := a.session.Snapshot()
	if snap.User == nil {
		fmt.Println("Sign in first.")
		return
	}
	selfID := snap.User.ID

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.chat.StartPolling(pollCtx, matchID, selfID, a.config.ChatPollInterval)

	if err := a.printConversation(ctx, matchID, selfID); err != nil {
		fmt.Printf("Could not load the conversation: %s\n", err.Error())
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("(type a message, '/refresh' to reload, '/back' to leave)")

	for {
		fmt.Printf("chat %s > ", matchID)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/back", "/exit":
			return
		case "/refresh":
			if err := a.printConversation(ctx, matchID, selfID); err != nil {
				fmt.Printf("Refresh failed: %s\n", err.Error())
			}
		default:
			if _, err := a.chat.Send(ctx, matchID, selfID, line); err != nil {
				fmt.Printf("Not delivered yet: %s\n", err.Error())
			}
		}
	}
}

func (a *App) printConversation(ctx context.Context, matchID, selfID string) error {
	msgs, err := a.chat.Messages(ctx, matchID)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		who := "them"
		if msg.SenderID == selfID {
			who = "you"
		}
		fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Local().Format("15:04"), who, msg.Content)
	}
	return nil
}
