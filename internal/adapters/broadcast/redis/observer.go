// Package redis publica los eventos del notifier en un canal Redis para
// consumidores fuera del proceso (pantallas de recepción, recordatorios).
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"vet-clinic-records/internal/domain/notify"
)

const DefaultChannel = "clinic.appointments"

// Observer es un notify.Observer más: no cambia la entrega en proceso.
type Observer struct {
	client  goredis.UniversalClient
	channel string
}

func NewObserver(client goredis.UniversalClient, channel string) *Observer {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}
	return &Observer{client: client, channel: channel}
}

func (o *Observer) Channel() string { return o.channel }

func (o *Observer) Update(ctx context.Context, ev notify.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("redis broadcast: encode %s: %w", ev.Type, err)
	}
	if err := o.client.Publish(ctx, o.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis broadcast: publish %s: %w", ev.Type, err)
	}
	return nil
}
