package services

import (
	"errors"
	"fmt"
	"net"
	"testing"
)

// reservePort binds a listener on 127.0.0.1 and returns it with its
// port, simulating an unrelated process holding the port.
func reservePort(t *testing.T) (net.Listener, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve listener: %v", err)
	}
	return ln, ln.Addr().(*net.TCPAddr).Port
}

func TestFindFreePortSkipsOccupied(t *testing.T) {
	ln, start := reservePort(t)
	defer ln.Close()

	port, err := FindFreePort("127.0.0.1", start, 100)
	if err != nil {
		t.Fatalf("FindFreePort error: %v", err)
	}
	if port <= start {
		t.Fatalf("port=%d want > %d", port, start)
	}
	if port >= start+100 {
		t.Fatalf("port=%d outside range [%d,%d)", port, start, start+100)
	}
}

func TestFindFreePortReturnsStart(t *testing.T) {
	ln, start := reservePort(t)
	ln.Close()

	port, err := FindFreePort("127.0.0.1", start, 100)
	if err != nil {
		t.Fatalf("FindFreePort error: %v", err)
	}
	if port != start {
		t.Fatalf("port=%d want=%d", port, start)
	}
}

func TestFindFreePortExhausted(t *testing.T) {
	var listeners []net.Listener
	defer func() {
		for _, ln := range listeners {
			ln.Close()
		}
	}()

	// Find three consecutive bindable ports, then hold all of them.
	var start int
	for candidate := 20200; candidate < 20900; candidate++ {
		var held []net.Listener
		ok := true
		for i := 0; i < 3; i++ {
			ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", candidate+i))
			if err != nil {
				ok = false
				break
			}
			held = append(held, ln)
		}
		if ok {
			start = candidate
			listeners = held
			break
		}
		for _, ln := range held {
			ln.Close()
		}
	}
	if start == 0 {
		t.Skip("no consecutive free ports available")
	}

	_, err := FindFreePort("127.0.0.1", start, 3)
	if err == nil {
		t.Fatalf("expected error for exhausted range")
	}
	if !errors.Is(err, ErrNoPortAvailable) {
		t.Fatalf("err=%v want ErrNoPortAvailable", err)
	}
}
