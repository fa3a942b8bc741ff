// Command chat is an interactive terminal front-end for the weather
// assistant: it reads user lines from stdin, forwards them to the agent
// and prints the reply.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/asmaiqbal85/ai-weather-agent/agents"
	"github.com/asmaiqbal85/ai-weather-agent/bootstrap"
	"github.com/asmaiqbal85/ai-weather-agent/config"
	logcontext "github.com/asmaiqbal85/ai-weather-agent/context"
	"github.com/asmaiqbal85/ai-weather-agent/log"
	"github.com/asmaiqbal85/ai-weather-agent/orm"
)

func main() {
	log.Init()
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}

	app, err := bootstrap.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatalf(context.Background(), "Setup failed: %v", err)
	}

	session, err := orm.CreateSession(app.DB)
	if err != nil {
		log.Fatalf(context.Background(), "Failed to create session: %v", err)
	}

	fmt.Println("Welcome! Check the latest weather updates for your location.")
	fmt.Println("Type a question, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		ctx := logcontext.WithRequestID(context.Background(), logcontext.NewRequestID())

		messages, err := orm.History(app.DB, session.ID, 20)
		if err != nil {
			log.Errorf(ctx, "History error: %v", err)
			continue
		}
		history := make([]agents.Turn, 0, len(messages))
		for _, msg := range messages {
			history = append(history, agents.Turn{Role: msg.Role, Content: msg.Content})
		}

		reply, err := app.Assistant.Reply(ctx, history, line)
		if err != nil {
			log.Errorf(ctx, "Assistant error: %v", err)
			fmt.Println("The assistant is unavailable right now. Please try again.")
			continue
		}

		fmt.Println(reply)

		orm.AppendMessage(app.DB, session.ID, agents.RoleUser, line)
		orm.AppendMessage(app.DB, session.ID, agents.RoleModel, reply)
	}
}
