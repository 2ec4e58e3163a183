package com

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLoop_CloseDevice(t *testing.T) {
	device := NewInMemory()
	lines := readLoop(device)
	device.Close()

	_, valid := <-lines

	assert.False(t, valid)
}

func TestReadLoop_ReadLine(t *testing.T) {
	device := NewInMemory()
	lines := readLoop(device)

	go func() {
		time.Sleep(100 * time.Millisecond)
		device.PrepareRead([]byte("hello\r\n\nworld"))
	}()

	firstLine, valid := <-lines

	assert.True(t, valid)
	assert.Equal(t, "hello", firstLine)

	device.Close()
	lastLine, valid := <-lines

	assert.True(t, valid)
	assert.Equal(t, "world", lastLine)

	_, valid = <-lines

	assert.False(t, valid)
}

func TestCOM_CloseDevice(t *testing.T) {
	device := NewInMemory()
	com := New(device)

	device.Close()

	time.Sleep(10 * time.Millisecond)
	assert.True(t, com.Closed())

	_, err := com.AT(context.Background(), "AT")
	assert.Error(t, err)
}

func TestCOM_ReadAllGarbageOnStartup(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	device.PrepareRead([]byte("+CMTI: \"SM\",3\r\n\n\nRING\r\n\n"))

	New(device)

	time.Sleep(10 * time.Millisecond)
	assert.True(t, device.IsReadEmpty())
}

func TestCOM_SimpleCommand(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	device.AnswerWith("OK\r\n")

	response, err := com.AT(context.Background(), "AT")

	assert.NoError(t, err)
	assert.Empty(t, response)
	assert.Equal(t, "AT\r\n", string(device.Written()))
}

func TestCOM_CommandWithData(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	go func() {
		device.WaitUntilWritten()
		time.Sleep(10 * time.Millisecond)
		device.PrepareRead([]byte("message1\r\n\r\nmessage2\r\nOK\r\n"))
	}()
	expected := []string{"message1", "message2"}
	actual, err := com.Request(context.Background(), "AT")
	assert.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestCOM_PDUIsNotTerminatedWithCRLF(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	device.AnswerWith("> \r\n+CMGW: 7\r\n\r\nOK\r\n")

	request := "AT+CMGW=3,1\r\n00C824\x1a"
	actual, err := com.AT(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, []string{"> ", "+CMGW: 7"}, actual)
	assert.Equal(t, request, string(device.Written()))
}

func TestCOM_CancelCommand(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	ctx, cancel := context.WithCancel(context.Background())
	com := New(device)
	go func() {
		device.WaitUntilWritten()
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	response, err := com.AT(ctx, "AT")
	assert.Error(t, err)
	assert.Empty(t, response)
}

func TestCOM_CommandWithError(t *testing.T) {
	tt := []struct {
		desc   string
		answer string
	}{
		{"error", "first line\r\nError at last\r\n"},
		{"CME error", "first line\r\n+CME Error: 35\r\n"},
		{"CMS error", "first line\r\n+CMS Error: 304\r\n"},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			device := NewInMemory()
			defer device.Close()
			com := New(device)
			device.AnswerWith(tc.answer)

			response, err := com.AT(context.Background(), "AT")

			assert.True(t, errors.Is(err, ErrCommandFailed), "%v", err)
			assert.Empty(t, response)
		})
	}
}

func TestCOM_ATs(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	device.AnswerWith("OK\r\n", "ERROR\r\n")

	err := com.ATs(context.Background(), "ATE0", "AT+CMGF=0", "AT")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "AT+CMGF=0 failed")
	assert.Equal(t, "ATE0\r\nAT+CMGF=0\r\n", string(device.Written()))
}

func TestCOM_WaitUntilReady(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	device.AnswerWith("+CME ERROR: 14\r\n", "+CME ERROR: 14\r\n", "OK\r\n")

	err := com.WaitUntilReady(context.Background(), time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(device.Written(), []byte("AT\r\n")))
}

func TestCOM_WaitUntilReady_OtherError(t *testing.T) {
	device := NewInMemory()
	defer device.Close()
	com := New(device)
	device.AnswerWith("+CME ERROR: 10\r\n")

	err := com.WaitUntilReady(context.Background(), time.Millisecond)

	assert.True(t, errors.Is(err, ErrCommandFailed))
}

func TestCOM_Trace(t *testing.T) {
	device := NewInMemory()
	tracer := new(bytes.Buffer)
	com := NewWithTrace(device, tracer)
	device.AnswerWith("OK\r\n")

	_, err := com.AT(context.Background(), "AT")
	require.NoError(t, err)
	device.Close()
	time.Sleep(10 * time.Millisecond)

	assert.Contains(t, tracer.String(), "tx:  AT")
	assert.Contains(t, tracer.String(), "rx:  OK")
}
