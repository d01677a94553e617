// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package httpapi

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// event is one message pushed to every subscriber of /api/events.
type event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// eventHub fans one event out to every connected /api/events client. It
// never blocks a slow reader longer than one buffered send; a client
// that falls behind is dropped.
type eventHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan event
}

func newEventHub() *eventHub {
	return &eventHub{clients: map[*websocket.Conn]chan event{}}
}

func (h *eventHub) add(conn *websocket.Conn) chan event {
	ch := make(chan event, 8)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *eventHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		close(ch)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

func (h *eventHub) broadcast(ev event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- ev:
		default: // drop for a client that isn't keeping up
		}
	}
}

func (h *eventHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		close(ch)
		conn.Close()
		delete(h.clients, conn)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := s.hub.add(conn)
	defer s.hub.remove(conn)

	for ev := range ch {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}
}
