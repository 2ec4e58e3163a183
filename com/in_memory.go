package com

import (
	"io"
	"sync"
	"time"
)

// NewInMemory returns a device that replaces the serial port of a modem in tests.
func NewInMemory() *InMemory {
	return &InMemory{
		readBuffer:  []byte{},
		writeBuffer: []byte{},
		readLock:    new(sync.RWMutex),
		writeLock:   new(sync.RWMutex),
		writeSignal: make(chan bool),
		closed:      make(chan struct{}),
	}
}

// InMemory is an io.ReadWriteCloser that keeps everything written to it and provides prepared data for reading.
type InMemory struct {
	readBuffer     []byte
	writeBuffer    []byte
	answers        []string
	readLock       *sync.RWMutex
	writeLock      *sync.RWMutex
	writeSignal    chan bool
	closed         chan struct{}
	closeWhenEmpty bool
}

func (rw *InMemory) Close() error {
	rw.readLock.Lock()
	defer rw.readLock.Unlock()
	rw.close()
	return nil
}

func (rw *InMemory) close() {
	select {
	case <-rw.closed:
	default:
		close(rw.closed)
	}
}

func (rw *InMemory) WaitUntilClosed() {
	<-rw.closed
}

func (rw *InMemory) Read(p []byte) (int, error) {
	for {
		rw.readLock.RLock()
		if len(rw.readBuffer) > 0 {
			rw.readLock.RUnlock()
			break
		}
		rw.readLock.RUnlock()
		select {
		case <-rw.closed:
			return 0, io.EOF
		case <-time.After(10 * time.Millisecond):
			continue
		}
	}

	select {
	case <-rw.closed:
		return 0, io.EOF
	default:
	}

	rw.readLock.Lock()
	defer rw.readLock.Unlock()
	n := copy(p, rw.readBuffer)
	rw.readBuffer = rw.readBuffer[n:]
	if rw.closeWhenEmpty && len(rw.readBuffer) == 0 {
		rw.close()
	}
	return n, nil
}

// PrepareRead appends the given data to the data that is provided for reading.
func (rw *InMemory) PrepareRead(p []byte) {
	rw.readLock.Lock()
	defer rw.readLock.Unlock()

	rw.readBuffer = append(rw.readBuffer, p...)
}

// AnswerWith prepares one answer for each of the next writes. Each answer is provided for reading
// as soon as the corresponding write happened.
func (rw *InMemory) AnswerWith(answers ...string) {
	rw.writeLock.Lock()
	defer rw.writeLock.Unlock()

	rw.answers = append(rw.answers, answers...)
}

func (rw *InMemory) IsReadEmpty() bool {
	rw.readLock.RLock()
	defer rw.readLock.RUnlock()

	return len(rw.readBuffer) == 0
}

func (rw *InMemory) CloseWhenEmpty(value bool) {
	rw.readLock.Lock()
	defer rw.readLock.Unlock()

	rw.closeWhenEmpty = value
}

func (rw *InMemory) Write(p []byte) (int, error) {
	rw.writeLock.Lock()
	defer rw.writeLock.Unlock()

	rw.writeBuffer = append(rw.writeBuffer, p...)
	if len(rw.answers) > 0 {
		rw.PrepareRead([]byte(rw.answers[0]))
		rw.answers = rw.answers[1:]
	}
	select {
	case rw.writeSignal <- true:
	default:
	}
	return len(p), nil
}

// Written returns everything that was written so far.
func (rw *InMemory) Written() []byte {
	rw.writeLock.RLock()
	defer rw.writeLock.RUnlock()

	return rw.writeBuffer
}

func (rw *InMemory) ClearWrite() {
	rw.writeLock.Lock()
	defer rw.writeLock.Unlock()

	rw.writeBuffer = []byte{}
}

func (rw *InMemory) WaitUntilWritten() {
	<-rw.writeSignal
}
