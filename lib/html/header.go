package html

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/format"
)

var startTime = time.Now()

func handleFunc(serveMux *http.ServeMux, pattern string,
	handler func(w http.ResponseWriter, req *http.Request)) {
	serveMux.HandleFunc(pattern,
		func(w http.ResponseWriter, req *http.Request) {
			SetSecurityHeaders(w)
			handler(w, req)
		})
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-XSS-Protection", "1")
	w.Header().Set("Content-Security-Policy",
		"default-src 'self' ;style-src 'self' 'unsafe-inline'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}

func writeFooter(writer io.Writer) {
	fmt.Fprintf(writer, "<font color=\"grey\">Page generated at: %s</font>\n",
		time.Now().Format(format.TimeFormatSeconds))
}

func writeHeader(writer io.Writer) {
	fmt.Fprintln(writer,
		`<table border="1" bordercolor=#e0e0e0 style="border-collapse: collapse">`)
	fmt.Fprintf(writer, "  <tr>\n")
	fmt.Fprintf(writer, "    <td>Start time: %s</td>\n",
		startTime.Format(format.TimeFormatSeconds))
	uptime := time.Since(startTime) + time.Millisecond*50
	uptime = (uptime / time.Millisecond / 100) * time.Millisecond * 100
	fmt.Fprintf(writer, "    <td>Uptime: %s</td>\n", format.Duration(uptime))
	fmt.Fprintf(writer, "  </tr>\n")
	fmt.Fprintf(writer, "  <tr>\n")
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	fmt.Fprintf(writer, "    <td>Allocated memory: %s</td>\n",
		format.FormatBytes(memStats.Alloc))
	if hostname, err := os.Hostname(); err != nil {
		fmt.Fprintf(writer, "    <td>Error getting hostname: %s</td>\n", err)
	} else {
		fmt.Fprintf(writer, "    <td>Hostname: %s</td>\n", hostname)
	}
	fmt.Fprintf(writer, "  </tr>\n")
	fmt.Fprintf(writer, "</table>\n")
	fmt.Fprintln(writer, "Raw <a href=\"metrics\">metrics</a><br>")
}
