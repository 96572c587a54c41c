// Command simulator sends sample utterances to a running aloy-nlp
// instance and prints the returned envelopes. Useful for exercising the
// pipeline against a live completion backend.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var defaultMessages = []string{
	"Acenda a luz da sala",
	"Apague a luz do quarto",
	"Mude a cor da luz da cozinha para azul",
	"Ajuste a intensidade da luz para 50%",
	"Qual é a previsão do tempo?",
	"Bom dia!",
}

func main() {
	baseURL := flag.String("url", "http://localhost:1200", "aloy-nlp base URL")
	message := flag.String("message", "", "single message to send (default: built-in samples)")
	flag.Parse()

	messages := defaultMessages
	if *message != "" {
		messages = []string{*message}
	}

	client := &http.Client{Timeout: 2 * time.Minute}
	failed := 0

	for _, msg := range messages {
		envelope, err := interpret(client, *baseURL, msg)
		if err != nil {
			log.Printf("FAIL %q: %v", msg, err)
			failed++
			continue
		}
		fmt.Printf("%-50q → %s\n", msg, envelope)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func interpret(client *http.Client, baseURL, message string) (string, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(baseURL+"/interpret", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var envelope struct {
		Type    string            `json:"type"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", err
	}

	return fmt.Sprintf("type=%s message=%q data=%v", envelope.Type, envelope.Message, envelope.Data), nil
}
