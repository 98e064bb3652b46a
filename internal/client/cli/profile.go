package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kinshipapp/kinship/internal/models"
)

// ShowProfile prints the current user's profile.
func (a *App) ShowProfile(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		fmt.Println("Sign in first.")
		return nil
	}

	p, err := a.profile.Get(ctx, snap.User.ID)
	if err != nil {
		fmt.Printf("Could not load your profile: %s\n", err.Error())
		return err
	}

	fmt.Println("Name:      " + p.Name)
	if p.Age > 0 {
		fmt.Printf("Age:       %d\n", p.Age)
	}
	if p.Bio != "" {
		fmt.Println("Bio:       " + p.Bio)
	}
	if len(p.Interests) > 0 {
		fmt.Println("Interests: " + strings.Join(p.Interests, ", "))
	}
	return nil
}

// EditProfile prompts for new profile fields and saves them. Empty answers
// leave the field unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	bio, err := getMultiline(a.reader, "Bio (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	update := models.ProfileUpdate{Name: name, Bio: bio}
	if name == "" && bio == "" {
		fmt.Println("Nothing to change.")
		return nil
	}

	if _, err := a.profile.Update(ctx, update); err != nil {
		fmt.Printf("Update failed: %s\n", err.Error())
		return err
	}
	fmt.Println("Profile updated.")
	return nil
}
