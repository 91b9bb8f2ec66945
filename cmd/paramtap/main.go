// Paramtap - tap the live parameter stream
//
// Connects to a running puppet service and prints every parameter frame,
// for checking rig output without a browser.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:8420", "Puppet service address")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/params", *addr)
	fmt.Printf("Connecting to %s\n", url)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: dial %s: %v\n", url, err)
		os.Exit(1)
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		conn.Close()
		os.Exit(0)
	}()

	var frame struct {
		Type   string             `json:"type"`
		Values map[string]float64 `json:"values"`
	}

	for {
		if err := conn.ReadJSON(&frame); err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			return
		}
		if frame.Type != "params" {
			continue
		}
		fmt.Printf("angle=(%.1f, %.1f, %.1f) eyes=(%.2f, %.2f) mouth=%.2f\n",
			frame.Values["ParamAngleX"], frame.Values["ParamAngleY"], frame.Values["ParamAngleZ"],
			frame.Values["ParamEyeLOpen"], frame.Values["ParamEyeROpen"],
			frame.Values["ParamMouthOpenY"])
	}
}
