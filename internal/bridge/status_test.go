package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusIdleFrameClearsBusyAndXoff(t *testing.T) {
	b, _, _, _ := newTestBridge(nil)
	b.session.Busy = true
	b.session.Xoff = true

	b.handleStatusByte(0xC0)

	assert.False(t, b.session.Busy)
	assert.False(t, b.session.Xoff)
}

func TestStatusBusyBit(t *testing.T) {
	b, _, _, _ := newTestBridge(nil)

	b.handleStatusByte(0xC4)

	assert.True(t, b.session.Busy)
	assert.False(t, b.session.Xoff)
}

func TestStatusXoffBit(t *testing.T) {
	b, _, _, _ := newTestBridge(nil)

	b.handleStatusByte(0xC1)
	assert.True(t, b.session.Xoff)

	// The next status frame without the buffer bit releases flow control.
	b.handleStatusByte(0xC4)
	assert.False(t, b.session.Xoff)
	assert.True(t, b.session.Busy)
}

func TestStatusFlagsAreIndependent(t *testing.T) {
	// Busy and buffer-full can be reported together; the flags are
	// orthogonal booleans, not a single state.
	b, _, _, _ := newTestBridge(nil)

	b.handleStatusByte(0xC5)

	assert.True(t, b.session.Busy)
	assert.True(t, b.session.Xoff)

	// Busy survives a plain xoff frame; it clears only on exact idle.
	b.handleStatusByte(0xC1)
	assert.True(t, b.session.Busy)
	assert.True(t, b.session.Xoff)
}

func TestStatusPotFrameIsInformational(t *testing.T) {
	b, _, network, _ := newTestBridge(nil)
	b.session.Busy = true

	b.handleStatusByte(0x9E)

	assert.True(t, b.session.Busy)
	assert.False(t, b.session.Xoff)
	assert.Empty(t, network.Sent())
}

func TestEchoBroadcast(t *testing.T) {
	b, _, network, _ := newTestBridge(nil)
	b.observePeer(clientAddr(4001))
	b.observePeer(clientAddr(4002))
	b.observePeer(clientAddr(4001)) // duplicate, set must not grow

	b.handleStatusByte('A')

	sent := network.Sent()
	require.Len(t, sent, 2)
	addrs := []string{sent[0].addr, sent[1].addr}
	assert.Contains(t, addrs, clientAddr(4001).String())
	assert.Contains(t, addrs, clientAddr(4002).String())
	for _, d := range sent {
		assert.Equal(t, []byte{'A'}, d.data)
	}
}

func TestEchoDisabled(t *testing.T) {
	b, _, network, _ := newTestBridge(func(c *Config) { c.Echo = false })
	b.observePeer(clientAddr(4001))

	b.handleStatusByte('A')

	assert.Empty(t, network.Sent())
}

func TestEchoSkipsUnprintable(t *testing.T) {
	b, _, network, _ := newTestBridge(nil)
	b.observePeer(clientAddr(4001))

	b.handleStatusByte(0x07)

	assert.Empty(t, network.Sent())
}

func TestEchoSendFailureDoesNotBlockOtherPeers(t *testing.T) {
	b, _, network, logger := newTestBridge(nil)
	b.observePeer(clientAddr(4001))
	b.observePeer(clientAddr(4002))
	network.sendErr = map[string]error{
		clientAddr(4001).String(): errors.New("i/o timeout"),
	}

	b.handleStatusByte('K')

	sent := network.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, clientAddr(4002).String(), sent[0].addr)
	assert.NotEmpty(t, logger.Warns())
}

func TestNewPeerLoggedOnce(t *testing.T) {
	b, _, _, logger := newTestBridge(nil)

	b.observePeer(clientAddr(4001))
	b.observePeer(clientAddr(4001))

	count := 0
	for _, msg := range logger.infos {
		if msg == "new client" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
