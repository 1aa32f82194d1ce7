package notifications

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ChannelKind string

const (
	ChannelRestaurant ChannelKind = "restaurant"
	ChannelOrder      ChannelKind = "order"
	ChannelUser       ChannelKind = "user"
)

var ErrInvalidChannel = errors.New("invalid channel")

func RestaurantChannel(id int64) string {
	return fmt.Sprintf("%s:%d", ChannelRestaurant, id)
}

func OrderChannel(id int64) string {
	return fmt.Sprintf("%s:%d", ChannelOrder, id)
}

func UserChannel(id int64) string {
	return fmt.Sprintf("%s:%d", ChannelUser, id)
}

// ParseChannel splits a channel key such as "order:42" into kind and id.
func ParseChannel(channel string) (ChannelKind, int64, error) {
	prefix, rawID, ok := strings.Cut(channel, ":")
	if !ok {
		return "", 0, ErrInvalidChannel
	}

	kind := ChannelKind(prefix)
	switch kind {
	case ChannelRestaurant, ChannelOrder, ChannelUser:
	default:
		return "", 0, ErrInvalidChannel
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, ErrInvalidChannel
	}
	return kind, id, nil
}
