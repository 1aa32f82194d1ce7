package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelKeys(t *testing.T) {
	assert.Equal(t, "restaurant:7", RestaurantChannel(7))
	assert.Equal(t, "order:42", OrderChannel(42))
	assert.Equal(t, "user:3", UserChannel(3))
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		channel string
		kind    ChannelKind
		id      int64
		wantErr bool
	}{
		{channel: "restaurant:7", kind: ChannelRestaurant, id: 7},
		{channel: "order:42", kind: ChannelOrder, id: 42},
		{channel: "user:3", kind: ChannelUser, id: 3},
		{channel: "user", wantErr: true},
		{channel: "user:", wantErr: true},
		{channel: "user:abc", wantErr: true},
		{channel: "user:0", wantErr: true},
		{channel: "user:-5", wantErr: true},
		{channel: "driver:1", wantErr: true},
		{channel: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			kind, id, err := ParseChannel(tt.channel)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidChannel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.id, id)
		})
	}
}
