package ditto

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/app/eventbus"
	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	"github.com/Black-And-White-Club/impiccato-bot/config"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSender struct{}

func (nopSender) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func TestModule_PublishesRepeatedLetters(t *testing.T) {
	obs := observability.NewNoop()
	bus := eventbus.NewInProcess(obs.Logger)
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscribe(ctx, events.LetterRepeatedV1)
	require.NoError(t, err)

	m := NewDittoModule(ctx, &config.Config{}, obs, nopSender{}, bus)
	assert.Len(t, m.Commands(), 2)

	_, err = m.DittoService.Activate(ctx)
	require.NoError(t, err)

	author := func(id string) *discordgo.Message {
		return &discordgo.Message{ChannelID: "c1", Content: "r", Author: &discordgo.User{ID: id, Username: id}}
	}
	require.NoError(t, m.DittoHandlers.OnMessage(ctx, author("u1")))
	require.NoError(t, m.DittoHandlers.OnMessage(ctx, author("u2")))

	select {
	case msg := <-messages:
		payload, err := eventbus.Decode[events.LetterRepeatedPayloadV1](msg)
		require.NoError(t, err)
		msg.Ack()
		assert.Equal(t, "R", payload.Letter)
		assert.Equal(t, "u1", payload.PreviousUserID)
		assert.Equal(t, "u2", payload.UserID)
	case <-ctx.Done():
		t.Fatal("no letter event received")
	}
}

func TestModule_CloseStopsRun(t *testing.T) {
	obs := observability.NewNoop()

	for _, closeFirst := range []bool{false, true} {
		m := NewDittoModule(context.Background(), &config.Config{}, obs, nopSender{}, nil)
		if closeFirst {
			require.NoError(t, m.Close())
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go m.Run(context.Background(), &wg)
		if !closeFirst {
			require.NoError(t, m.Close())
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("module did not stop (close first: %v)", closeFirst)
		}
	}
}
