package openai_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kbukum/slaybot/llm"
	"github.com/kbukum/slaybot/llm/openai"
)

func TestBuildRequest(t *testing.T) {
	d := openai.New("test", "")
	if d.ChatPath() != openai.DefaultChatPath {
		t.Errorf("ChatPath() = %q", d.ChatPath())
	}

	body, err := d.BuildRequest(llm.CompletionRequest{
		Model:        "m",
		SystemPrompt: "sys",
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error: %v", err)
	}
	data, _ := json.Marshal(body)

	var got map[string]any
	_ = json.Unmarshal(data, &got)
	if got["model"] != "m" {
		t.Errorf("model = %v", got["model"])
	}
	if got["stream"] != false {
		t.Errorf("stream must be sent as false, got %v", got["stream"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", got["messages"])
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "sys" {
		t.Errorf("first message = %v", first)
	}
}

func TestBuildRequest_NoMessages(t *testing.T) {
	if _, err := openai.New("test", "").BuildRequest(llm.CompletionRequest{}); err == nil {
		t.Error("expected error for empty messages")
	}
}

func TestParseResponse(t *testing.T) {
	d := openai.New("test", "")
	resp, err := d.ParseResponse([]byte(`{"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"done"}}],"usage":{"total_tokens":7}}`))
	if err != nil {
		t.Fatalf("ParseResponse() error: %v", err)
	}
	if resp.Content != "done" || resp.Model != "m" || resp.Usage.TotalTokens != 7 {
		t.Errorf("unexpected response %+v", resp)
	}

	if _, err := d.ParseResponse([]byte(`{"choices":[]}`)); !errors.Is(err, llm.ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
	if _, err := d.ParseResponse([]byte(`not json`)); err == nil {
		t.Error("expected decode error")
	}
}
