package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	defer cancel()
	event := StateEvent{SessionID: "s1", Kind: StateActivityCode}
	hook.StateChanged(context.Background(), event)
	select {
	case e := <-ch:
		if e.SessionID != event.SessionID || e.Kind != event.Kind {
			t.Fatalf("unexpected event %#v", e)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookFiltersBySession(t *testing.T) {
	hook := NewBroadcastHook()
	mine, cancelMine := hook.Subscribe("s1")
	defer cancelMine()

	hook.StateChanged(context.Background(), StateEvent{SessionID: "s2", Kind: StateSidebar})
	select {
	case e := <-mine:
		t.Fatalf("did not expect event for another session, got %#v", e)
	default:
	}

	hook.StateChanged(context.Background(), StateEvent{SessionID: "s1", Kind: StateSidebar})
	select {
	case <-mine:
	default:
		t.Fatalf("expected event for own session")
	}
}

func TestBroadcastHookDropsWhenSubscriberIsSlow(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	defer cancel()
	for i := 0; i < subscriberBuffer*2; i++ {
		hook.StateChanged(context.Background(), StateEvent{SessionID: "s1"})
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("expected buffered events to cap at %d, got %d", subscriberBuffer, len(ch))
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("s1")
	done := make(chan int)
	go func() {
		count := 0
		for range ch {
			count++
		}
		done <- count
	}()

	hook.StateChanged(context.Background(), StateEvent{SessionID: "s1"})
	time.Sleep(10 * time.Millisecond)
	cancel()
	cancel()

	select {
	case count := <-done:
		if count != 1 {
			t.Fatalf("expected one event, got %d", count)
		}
	case <-time.After(time.Second):
		t.Fatalf("consumer did not exit after cancel")
	}
	if hook.Subscribers() != 0 {
		t.Fatalf("expected subscription to be removed")
	}
}

func TestBroadcastHookServeSSE(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(hook.ServeSSE("s1"))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("sse request: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	deadline := time.Now().Add(time.Second)
	for hook.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hook.StateChanged(context.Background(), StateEvent{SessionID: "s1", Kind: StateDateRange})

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	payload := strings.TrimPrefix(strings.TrimSpace(line), "data: ")
	var event StateEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("decode event %q: %v", payload, err)
	}
	if event.Kind != StateDateRange {
		t.Fatalf("expected date range event, got %#v", event)
	}
}

func TestBroadcastHookStreamsRequireSession(t *testing.T) {
	hook := NewBroadcastHook()
	for name, handler := range map[string]http.HandlerFunc{
		"sse":       hook.ServeSSE(""),
		"websocket": hook.ServeWebSocket(""),
	} {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
	if hook.Subscribers() != 0 {
		t.Fatalf("expected no subscriptions")
	}
}
