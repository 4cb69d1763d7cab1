package restserver

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (c *Controller) handleLatest(w http.ResponseWriter, req *http.Request) {
	r, ok := c.results.Latest()
	if !ok {
		http.Error(w, "no frames classified yet", http.StatusNotFound)
		return
	}
	if err := c.formatter.WriteResponse(w, req, r); err != nil {
		c.logger.Errorf("error writing latest totals response: %v", err)
	}
}

func (c *Controller) handleFrame(w http.ResponseWriter, req *http.Request) {
	index, err := strconv.Atoi(mux.Vars(req)["index"])
	if err != nil {
		http.Error(w, "invalid frame index", http.StatusBadRequest)
		return
	}

	r, ok := c.results.ByFrame(index)
	if !ok {
		http.Error(w, "frame not found", http.StatusNotFound)
		return
	}
	if err := c.formatter.WriteResponse(w, req, r); err != nil {
		c.logger.Errorf("error writing frame totals response: %v", err)
	}
}

func (c *Controller) handleHealth(w http.ResponseWriter, req *http.Request) {
	payload := map[string]any{
		"status":        "ok",
		"cached_frames": c.results.Len(),
	}
	if err := c.formatter.WriteResponse(w, req, payload); err != nil {
		c.logger.Errorf("error writing health response: %v", err)
	}
}
