package services

import (
	"strings"
	"testing"

	"chaat-factory-backend/pkg/models"
)

func resetClients() {
	clientsMu.Lock()
	clients = make(map[*realtimeClient]bool)
	clientsMu.Unlock()
}

func addTestClient(role models.Role, kioskID, buffer int) *realtimeClient {
	client := &realtimeClient{
		send:    make(chan []byte, buffer),
		role:    role,
		kioskID: kioskID,
	}
	clientsMu.Lock()
	clients[client] = true
	clientsMu.Unlock()
	return client
}

func receivedPayload(client *realtimeClient) (string, bool) {
	select {
	case payload := <-client.send:
		return string(payload), true
	default:
		return "", false
	}
}

func TestPublishChangeFiltersByRoleAndKiosk(t *testing.T) {
	resetClients()

	manager := addTestClient(models.RoleManager, 1, 4)
	kioskTwo := addTestClient(models.RoleKiosk, 2, 4)
	kioskThree := addTestClient(models.RoleKiosk, 3, 4)

	PublishChange(ChangeEvent{Table: "kiosk_items", Action: ActionUpdate, KioskID: 2})

	if payload, ok := receivedPayload(manager); !ok || !strings.Contains(payload, `"kiosk_items"`) {
		t.Errorf("manager payload = %q, ok = %v; want kiosk_items event", payload, ok)
	}
	if _, ok := receivedPayload(kioskTwo); !ok {
		t.Error("kiosk 2 should receive its own event")
	}
	if payload, ok := receivedPayload(kioskThree); ok {
		t.Errorf("kiosk 3 received %q, want nothing", payload)
	}

	// Kiosk-unscoped events reach everyone
	PublishChange(ChangeEvent{Table: "factory_items", Action: ActionInsert})
	if _, ok := receivedPayload(kioskThree); !ok {
		t.Error("kiosk 3 should receive unscoped events")
	}
}

func TestPublishChangeDropsStalledClientWithoutBlocking(t *testing.T) {
	resetClients()

	healthy := addTestClient(models.RoleManager, 1, 4)
	stalled := addTestClient(models.RoleKiosk, 2, 1)
	stalled.send <- []byte("backlog") // queue full, client not draining

	PublishChange(ChangeEvent{Table: "orders", Action: ActionInsert, KioskID: 2})

	clientsMu.Lock()
	_, stillRegistered := clients[stalled]
	clientsMu.Unlock()
	if stillRegistered {
		t.Error("stalled client should be dropped from the hub")
	}

	// Channel drains its backlog and then reads closed
	<-stalled.send
	if _, open := <-stalled.send; open {
		t.Error("stalled client's send channel should be closed")
	}

	if _, ok := receivedPayload(healthy); !ok {
		t.Error("healthy client should still receive the event")
	}
}

func TestRandomObjectNameIsUniquePerUpload(t *testing.T) {
	first, err := randomObjectName("pani-puri.jpg")
	if err != nil {
		t.Fatalf("randomObjectName: %v", err)
	}
	second, err := randomObjectName("pani-puri.jpg")
	if err != nil {
		t.Fatalf("randomObjectName: %v", err)
	}

	if first == second {
		t.Errorf("object names collide: %q", first)
	}
	for _, name := range []string{first, second} {
		if !strings.HasSuffix(name, "-pani-puri.jpg") {
			t.Errorf("object name %q should keep the file name suffix", name)
		}
		if len(name) != 32+len("-pani-puri.jpg") {
			t.Errorf("object name %q should carry a 16-byte hex prefix", name)
		}
	}
}
