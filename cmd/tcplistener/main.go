// Command tcplistener prints every request it receives and answers with a
// fixed body. It is a tool for inspecting what clients actually send.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/google/uuid"

	"github.com/Brownie44l1/http-server/internal/request"
	"github.com/Brownie44l1/http-server/internal/response"
)

func main() {
	addr := flag.String("addr", ":42069", "address to listen on")
	flag.Parse()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "listen:", err)
		os.Exit(1)
	}
	defer listener.Close()
	fmt.Printf("Listening on %s...\n", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	id := uuid.New()
	req, err := request.RequestFromReader(conn)
	if err != nil {
		fmt.Printf("[%s] failed to parse request: %v\n", id, err)
		response.BadRequest().WriteTo(conn)
		return
	}

	fmt.Printf("[%s] Request line:\n", id)
	fmt.Printf("- Method: %s\n", req.Method)
	fmt.Printf("- Target: %s\n", req.Path)
	fmt.Printf("- Version: %s\n", req.Version)
	fmt.Println("Headers:")
	req.Headers.Each(func(name, value string) {
		fmt.Printf("- %s: %s\n", name, value)
	})
	fmt.Println("Body:")
	fmt.Printf("%s\n", req.BodyString())

	response.Text(req.Version, response.StatusOK, "Hello from your HTTP server!\n").WriteTo(conn)
}
