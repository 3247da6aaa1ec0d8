package domain

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/questx-lab/vesting/internal/model"
	"github.com/questx-lab/vesting/pkg/ws"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

type ViewStreamDomain interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type viewStreamDomain struct {
	claim    ClaimDomain
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewViewStreamDomain pushes every claim view change to the websocket
// clients of hub.
func NewViewStreamDomain(ctx context.Context, claim ClaimDomain, hub *ws.Hub) *viewStreamDomain {
	claim.Subscribe(func(view model.ClaimView) {
		b, err := json.Marshal(view)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal claim view: %v", err)
			return
		}

		hub.Broadcast(b)
	})

	return &viewStreamDomain{claim: claim, hub: hub, upgrader: upgrader}
}

func (d *viewStreamDomain) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := d.claim.GetClaimView(ctx, &model.GetClaimViewRequest{})
	if err != nil {
		http.Error(w, "Unable to get claim view", http.StatusInternalServerError)
		return
	}

	first, err := json.Marshal(resp.View)
	if err != nil {
		http.Error(w, "Unable to get claim view", http.StatusInternalServerError)
		return
	}

	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Unable to upgrade websocket: %v", err)
		return
	}

	client := ws.NewClient(d.hub, conn)
	xcontext.Logger(ctx).Debugf("View stream client %s connected", client.ID)
	client.Serve(first)
	xcontext.Logger(ctx).Debugf("View stream client %s disconnected", client.ID)
}
