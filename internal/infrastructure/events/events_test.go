package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

type recordingPublisher struct {
	events []dto.LedgerEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e dto.LedgerEvent) error {
	r.events = append(r.events, e)
	return r.err
}

func TestFanout_PublicaEnTodosYUneErrores(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker caído")}
	f := Fanout{failing, nil, ok}

	err := f.Publish(context.Background(), dto.LedgerEvent{Type: dto.EventTransactionCreated, ProductID: "p1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker caído")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)
}

func TestHub_PublishEncolaEventoSerializado(t *testing.T) {
	h := NewHub(nil)
	event := dto.LedgerEvent{
		Type:       dto.EventStockAdjusted,
		ProductID:  "p1",
		Quantity:   5,
		StockAfter: 12,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, h.Publish(context.Background(), event))

	var got dto.LedgerEvent
	require.NoError(t, json.Unmarshal(<-h.Broadcast, &got))
	assert.Equal(t, event.Type, got.Type)
	assert.Equal(t, 12, got.StockAfter)
}

func TestHub_PublishDescartaConBufferLleno(t *testing.T) {
	h := NewHub(nil)
	for i := 0; i < broadcastBuffer+5; i++ {
		require.NoError(t, h.Publish(context.Background(), dto.LedgerEvent{Type: dto.EventTransactionCreated}))
	}
	assert.Len(t, h.Broadcast, broadcastBuffer)
}

func TestHub_RunSeDetieneAlCancelar(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
	assert.Equal(t, 0, h.ClientCount())
}

func TestHub_JoinYLeaveNoBloqueanTrasDetenerse(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	returned := make(chan bool)
	go func() {
		joined := h.Join(nil)
		h.Leave(nil)
		returned <- joined
	}()
	select {
	case joined := <-returned:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("Join/Leave bloqueados con el hub detenido")
	}
}

func TestNewKafkaPublisher_Configuracion(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{})
	require.Error(t, err)

	p, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, p.Topic())
	require.NoError(t, p.Close())
}
