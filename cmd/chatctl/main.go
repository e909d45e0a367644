// Command chatctl seeds and inspects the relay store from a terminal.
package main

import (
	"chat-relay/auth"
	"chat-relay/domain/chat"
	"chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/services"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	follow := flag.String("follow", "", "Make two users follow each other, as a:b")
	unfollow := flag.String("unfollow", "", "Remove the follow of a towards b, as a:b")
	history := flag.String("history", "", "Print the conversation between a and b, as a:b")
	token := flag.String("token", "", "Mint a development bearer token for a user")
	flag.Parse()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if *token != "" {
		if err := mintToken(os.Stdout, cfg, chat.Identity(*token)); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *follow == "" && *unfollow == "" && *history == "" {
		flag.Usage()
		os.Exit(2)
	}

	path, err := cfg.StorePath()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	logger := logs.GetLoggerFromString("WARN")
	ctx := context.Background()
	followService := services.NewFollowService(logger, repositories.NewFollowRepository(db, logger))
	messages := repositories.NewMessageRepository(db, logger)

	switch {
	case *follow != "":
		err = withPair(*follow, func(a, b chat.Identity) error {
			return befriend(ctx, followService, a, b)
		})
	case *unfollow != "":
		err = withPair(*unfollow, func(a, b chat.Identity) error {
			return followService.Unfollow(ctx, a, b)
		})
	case *history != "":
		err = withPair(*history, func(a, b chat.Identity) error {
			found, err := messages.GetMessages(ctx, a, b)
			if err != nil {
				return err
			}
			renderHistory(os.Stdout, found)
			return nil
		})
	}
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Colours {
		color.Green.Println("✔ done")
	}
}

// parsePair reads "a:b" into two identities.
func parsePair(s string) (chat.Identity, chat.Identity, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok || a == "" || b == "" {
		return "", "", fmt.Errorf("%w: expected a:b, got %q", errors.ErrInvalidRequest, s)
	}
	return chat.Identity(a), chat.Identity(b), nil
}

func withPair(s string, fn func(a, b chat.Identity) error) error {
	a, b, err := parsePair(s)
	if err != nil {
		return err
	}
	return fn(a, b)
}

// befriend makes the follow mutual. Existing follows are kept.
func befriend(ctx context.Context, follows services.IFollowService, a, b chat.Identity) error {
	for _, pair := range [][2]chat.Identity{{a, b}, {b, a}} {
		if err := follows.Follow(ctx, pair[0], pair[1]); err != nil && !errors.Is(err, errors.ErrAlreadyFollowing) {
			return err
		}
	}
	return nil
}

func mintToken(w io.Writer, cfg Config, user chat.Identity) error {
	if cfg.TokenSecret == "" {
		return fmt.Errorf("CHATCTL_TOKEN_SECRET is required to mint a token")
	}
	if err := user.Validate(); err != nil {
		return err
	}
	token, err := auth.NewTokenService(cfg.TokenSecret, cfg.TokenIssuer).GenerateToken(user.String(), cfg.TokenDuration)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Bearer %s\n", token)
	return err
}

func renderHistory(w io.Writer, messages []chat.Message) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "From", "To", "Body", "ID"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, m := range messages {
		table.Append([]string{
			m.SentAt.Format("2006-01-02 15:04:05"),
			m.From.String(),
			m.To.String(),
			m.Body,
			m.ID.String()[:8],
		})
	}
	table.Render()
}
