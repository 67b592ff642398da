package live

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Hub раздаёт события турниров подключённым клиентам. Комната — один турнир,
// события о вступлениях и смене статуса рассылаются всем в комнате.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.Room]; ok {
				if _, okClient := clients[client]; okClient {
					client.Mu.Lock()
					if !client.IsClosed {
						close(client.Send)
						client.IsClosed = true
					}
					client.Mu.Unlock()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// RoomName — имя комнаты для событий конкретного турнира.
func RoomName(tournamentID int64) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}

// BroadcastTournamentUpdate реализует services.LiveBroadcaster.
func (h *Hub) BroadcastTournamentUpdate(tournamentID int64, payload interface{}) {
	h.broadcastToRoom(RoomName(tournamentID), payload)
}

func (h *Hub) broadcastToRoom(roomID string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshalling message for room %s: %v", roomID, err)
		return
	}

	for client := range roomClients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			// Канал клиента переполнен, событие пропускается.
		}
		client.Mu.Unlock()
	}
}
