package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagoazevedo/hotchat/internal/api"
	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/internal/config"
	"github.com/thiagoazevedo/hotchat/internal/session"
	"github.com/thiagoazevedo/hotchat/internal/transport"
	"github.com/thiagoazevedo/hotchat/internal/ui"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "Path to the configuration file")
	serverURL := flag.String("server", "", "Relay websocket URL (overrides config)")
	apiURL := flag.String("api", "", "Backend base URL (overrides config)")
	register := flag.Bool("register", false, "Create an account and exit")
	name := flag.String("name", "", "Account name (with -register)")
	email := flag.String("email", "", "Account email (with -register)")
	password := flag.String("password", "", "Account password (with -register)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.RelayURL = *serverURL
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}

	logger := newLogger(cfg.LogLevel)

	backend, err := api.NewClient(api.ClientConfig{BaseURL: cfg.APIBaseURL, Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *register {
		if err := runRegister(backend, *name, *email, *password); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Account created. You can sign in now.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	self, err := backend.LoadCurrentUser(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load the logged-in user:", err)
		os.Exit(1)
	}

	store := chat.NewConversationStore(nil)
	contacts := chat.NewContactList()
	blocks := chat.NewBlockTracker()
	router := chat.NewRouter(logger)

	relay := transport.NewWSTransport(cfg.RelayURL, logger)
	sess := session.New(self.Email, relay, router, logger)
	dispatcher := session.NewDispatcher(sess, store, blocks, logger)

	program := tea.NewProgram(
		ui.New(self, store, contacts, blocks, dispatcher, backend),
		tea.WithAltScreen(),
	)
	bindTopics(router, self, store, contacts, blocks, program)

	if err := sess.Connect(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "could not connect to the relay:", err)
		os.Exit(1)
	}
	defer sess.Disconnect()

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRegister(backend *api.Client, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("-register requires -name, -email and -password")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return backend.CreateAccount(ctx, name, email, password)
}

// bindTopics wires the five inbound topics to the stores. Handlers run on
// the transport's receive goroutine; they mutate the stores and notify the
// program, which re-reads the stores on its own loop.
func bindTopics(router *chat.Router, self protocol.User, store *chat.ConversationStore, contacts *chat.ContactList, blocks *chat.BlockTracker, program *tea.Program) {
	appendInbound := func(msg protocol.Message) {
		store.Append(msg.IDUserFrom, msg)
		store.MarkUnreadIfHidden(msg.IDUserFrom)
		program.Send(ui.ConversationUpdatedMsg{ContactID: msg.IDUserFrom})
	}

	router.BindMessage(protocol.UserTopic(self.Email), appendInbound)

	router.BindMessageBatch(protocol.OfflineTopic(self.Email), func(msgs []protocol.Message) {
		for _, msg := range msgs {
			appendInbound(msg)
		}
	})

	router.BindContacts(protocol.ContactsTopic, func(users []protocol.User) {
		contacts.Replace(users, self.Email)
		program.Send(ui.RosterUpdatedMsg{})
	})

	// Block results carry no contact email; like the original client they
	// apply to whoever is selected when they arrive. A superseded check can
	// therefore briefly tag the wrong contact until its own response lands.
	applyBlock := func(result protocol.BlockResult, notice string) {
		id, ok := store.Selected()
		if !ok {
			return
		}
		contact, ok := contacts.ByID(id)
		if !ok {
			return
		}
		blocks.Apply(contact.Email, result.UserBlocked)
		program.Send(ui.BlockUpdatedMsg{Email: contact.Email, Notice: notice})
	}

	router.BindBlockResult(protocol.BlockTopic(self.Email), func(result protocol.BlockResult) {
		applyBlock(result, result.Message)
	})
	router.BindBlockResult(protocol.CheckBlockTopic(self.Email), func(result protocol.BlockResult) {
		applyBlock(result, "")
	})
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
