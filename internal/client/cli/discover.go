package cli

import (
	"context"
	"fmt"
	"strings"
)

// ShowFeed prints the discovery feed.
func (a *App) ShowFeed(ctx context.Context) error {
	feed, err := a.feed.Feed(ctx)
	if err != nil {
		fmt.Printf("Could not load the feed: %s\n", err.Error())
		return err
	}
	if len(feed) == 0 {
		fmt.Println("No more profiles right now. Check back later!")
		return nil
	}

	for _, p := range feed {
		line := fmt.Sprintf("%s  %s", p.ID, p.Name)
		if p.Age > 0 {
			line += fmt.Sprintf(", %d", p.Age)
		}
		if len(p.Interests) > 0 {
			line += "  [" + strings.Join(p.Interests, ", ") + "]"
		}
		fmt.Println(line)
		if p.Bio != "" {
			fmt.Println("    " + p.Bio)
		}
	}
	return nil
}

// Like likes a profile from the feed.
func (a *App) Like(ctx context.Context, profileID string) error {
	res, err := a.feed.Like(ctx, profileID)
	if err != nil {
		fmt.Printf("Like failed: %s\n", err.Error())
		return err
	}
	if !res.Matched {
		fmt.Println("Liked.")
	}
	return nil
}

// Pass passes on a profile from the feed.
func (a *App) Pass(ctx context.Context, profileID string) error {
	if err := a.feed.Pass(ctx, profileID); err != nil {
		fmt.Printf("Pass failed: %s\n", err.Error())
		return err
	}
	fmt.Println("Passed.")
	return nil
}

// ShowMatches prints the match list with last-message previews.
func (a *App) ShowMatches(ctx context.Context) error {
	matches, err := a.matches.List(ctx)
	if err != nil {
		fmt.Printf("Could not load matches: %s\n", err.Error())
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches yet. Keep browsing!")
		return nil
	}

	for _, m := range matches {
		name := "Unknown"
		if m.OtherUser != nil {
			name = m.OtherUser.Name
		}
		line := fmt.Sprintf("%s  %s", m.ID, name)
		if m.LastMessage != nil {
			line += "  | " + m.LastMessage.Content
		}
		if m.Unread > 0 {
			line += fmt.Sprintf("  (%d unread)", m.Unread)
		}
		fmt.Println(line)
	}
	return nil
}
