package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"id":"e1","type":"new_bid","seq":4,"data":{"price":120.5,"newDuration":60}}`))
	require.NoError(t, err)
	assert.Equal(t, "e1", env.ID)
	assert.Equal(t, EventTypeNewBid, env.Type)
	assert.Equal(t, uint64(4), env.Seq)

	_, err = DecodeEnvelope([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeEnvelope([]byte(`{"data":{}}`))
	assert.Error(t, err, "type is required")
}

func TestParseEventPayload_NewBid(t *testing.T) {
	env := &Envelope{Type: EventTypeNewBid, Data: []byte(`{"auction_id":"a1","price":99.99,"newDuration":45}`)}

	payload, err := ParseEventPayload(env)
	require.NoError(t, err)

	p, ok := payload.(NewBidPayload)
	require.True(t, ok)
	assert.Equal(t, "99.99", p.Price.String())
	require.NotNil(t, p.NewDuration)
	assert.Equal(t, int64(45), *p.NewDuration)
	assert.Equal(t, "a1", AuctionIDOf(p))
}

func TestParseEventPayload_NewBidReducedForm(t *testing.T) {
	env := &Envelope{Type: EventTypeNewBid, Data: []byte(`{"price":"150"}`)}

	payload, err := ParseEventPayload(env)
	require.NoError(t, err)

	p := payload.(NewBidPayload)
	assert.Equal(t, "150", p.Price.String())
	assert.Nil(t, p.NewDuration)
	assert.Empty(t, AuctionIDOf(p))
}

func TestParseEventPayload_UpdateRankings(t *testing.T) {
	env := &Envelope{Type: EventTypeUpdateRankings, Data: []byte(`{"rankings":{"Alice":1,"Bob":2}}`)}

	payload, err := ParseEventPayload(env)
	require.NoError(t, err)

	p := payload.(UpdateRankingsPayload)
	assert.Equal(t, map[string]int{"Alice": 1, "Bob": 2}, p.Rankings)
}

func TestParseEventPayload_Lifecycle(t *testing.T) {
	for _, typ := range []EventType{EventTypeAuctionEnded, EventTypeAuctionReset, EventTypeAuctionDeleted} {
		env := &Envelope{Type: typ, Data: []byte(`{"auction_id":"a9"}`)}
		payload, err := ParseEventPayload(env)
		require.NoError(t, err, typ)
		assert.Equal(t, "a9", AuctionIDOf(payload), typ)
	}
}

func TestParseEventPayload_UnknownAndMalformed(t *testing.T) {
	payload, err := ParseEventPayload(&Envelope{Type: "chat", Data: []byte(`{}`)})
	assert.NoError(t, err)
	assert.Nil(t, payload)

	_, err = ParseEventPayload(&Envelope{Type: EventTypeNewBid, Data: []byte(`{"price":"abc"}`)})
	assert.Error(t, err)
}
