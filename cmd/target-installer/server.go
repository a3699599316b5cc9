//go:build linux
// +build linux

package main

import (
	"bufio"
	"fmt"
	"net"
	"net/http"

	"github.com/Cloud-Foundations/target-installer/lib/html"
	"github.com/Cloud-Foundations/target-installer/lib/log"
)

type state struct {
	htmlWriters []html.HtmlWriter
}

// startServer serves the status page and the tricorder metrics (registered
// on the default mux) on portNum.
func startServer(portNum uint, logger log.DebugLogger,
	htmlWriters ...html.HtmlWriter) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", portNum))
	if err != nil {
		return err
	}
	myState := state{htmlWriters}
	html.HandleFunc(http.DefaultServeMux, "/", myState.statusHandler)
	go func() {
		if err := http.Serve(listener, nil); err != nil {
			logger.Printf("error serving HTTP: %s\n", err)
		}
	}()
	logger.Debugf(0, "status page available on port: %d\n", portNum)
	return nil
}

func (s state) statusHandler(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	writer := bufio.NewWriter(w)
	defer writer.Flush()
	fmt.Fprintln(writer, "<title>target-installer status page</title>")
	fmt.Fprintln(writer, `<style>
                          table, th, td {
                          border-collapse: collapse;
                          }
                          </style>`)
	fmt.Fprintln(writer, "<body>")
	fmt.Fprintln(writer, "<center>")
	fmt.Fprintln(writer, "<h1>target-installer status page</h1>")
	fmt.Fprintln(writer, "</center>")
	html.WriteHeader(writer)
	fmt.Fprintln(writer, "<h3>")
	for _, htmlWriter := range s.htmlWriters {
		htmlWriter.WriteHtml(writer)
	}
	fmt.Fprintln(writer, "</h3>")
	fmt.Fprintln(writer, "<hr>")
	html.WriteFooter(writer)
	fmt.Fprintln(writer, "</body>")
}
