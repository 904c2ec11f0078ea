// Reelparse
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Reelparse.
//
// Reelparse is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Reelparse is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Reelparse.  If not, see <http://www.gnu.org/licenses/>.

// Package notifications queues JSON-RPC notifications for broadcast to
// every connected websocket client.
package notifications

import (
	"encoding/json"

	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/rs/zerolog/log"
)

// send never blocks. A full queue drops the notification.
func send(ns chan<- models.Notification, method string, payload any) {
	if ns == nil {
		return
	}
	var params json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("method", method).Msg("failed to marshal notification")
			return
		}
		params = b
	}
	select {
	case ns <- models.Notification{Method: method, Params: params}:
	default:
		log.Warn().Str("method", method).Msg("notification queue full, dropping")
	}
}

func HistoryAdded(ns chan<- models.Notification, payload models.HistoryResponseEntry) {
	send(ns, models.NotificationHistoryAdded, payload)
}

func HistoryCleared(ns chan<- models.Notification) {
	send(ns, models.NotificationHistoryCleared, nil)
}

func RulesReloaded(ns chan<- models.Notification, payload models.RulesReloadedPayload) {
	send(ns, models.NotificationRulesReloaded, payload)
}
