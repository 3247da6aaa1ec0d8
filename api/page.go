package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/vesting/internal/domain"
	"github.com/questx-lab/vesting/internal/model"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/session"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

//go:embed templates/*.html
var templates embed.FS

type pageData struct {
	View          model.ClaimView
	Flashes       []string
	DefaultAmount string
}

// Page renders the claim view as a html page with plain forms.
type Page struct {
	claimDomain  domain.ClaimDomain
	walletDomain domain.WalletDomain
	sessions     *session.Store
	tmpl         *template.Template
	newContext   func(ctx context.Context, r *http.Request) context.Context
}

func NewPage(
	claimDomain domain.ClaimDomain,
	walletDomain domain.WalletDomain,
	sessions *session.Store,
	newContext func(ctx context.Context, r *http.Request) context.Context,
) (*Page, error) {
	tmpl, err := template.ParseFS(templates, "templates/claim.html")
	if err != nil {
		return nil, err
	}

	return &Page{
		claimDomain:  claimDomain,
		walletDomain: walletDomain,
		sessions:     sessions,
		tmpl:         tmpl,
		newContext:   newContext,
	}, nil
}

func (p *Page) Register(engine *gin.Engine) {
	engine.GET("/", p.show)
	engine.POST("/", p.submit)
}

func (p *Page) show(gc *gin.Context) {
	ctx := p.newContext(gc.Request.Context(), gc.Request)

	resp, err := p.claimDomain.GetClaimView(ctx, &model.GetClaimViewRequest{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claim view: %v", err)
		gc.String(http.StatusInternalServerError, "Cannot get claim view")
		return
	}

	data := pageData{
		View:          resp.View,
		Flashes:       p.sessions.PopFlashes(gc.Request, gc.Writer),
		DefaultAmount: xcontext.Configs(ctx).Claim.DefaultAmount,
	}

	gc.Header("Content-Type", "text/html; charset=utf-8")
	gc.Status(http.StatusOK)
	if err := p.tmpl.ExecuteTemplate(gc.Writer, "claim.html", data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot render claim page: %v", err)
	}
}

func (p *Page) submit(gc *gin.Context) {
	ctx := p.newContext(gc.Request.Context(), gc.Request)

	var (
		message string
		err     error
	)

	switch gc.PostForm("action") {
	case "claim":
		var resp *model.ClaimResponse
		resp, err = p.claimDomain.Claim(ctx, &model.ClaimRequest{Amount: gc.PostForm("amount")})
		if err == nil {
			message = fmt.Sprintf("Claim confirmed in tx %s", resp.TxHash)
		}

	case "connect":
		var resp *model.ConnectWalletResponse
		resp, err = p.walletDomain.ConnectWallet(ctx, &model.ConnectWalletRequest{
			Passphrase: gc.PostForm("passphrase"),
		})
		if err == nil {
			message = fmt.Sprintf("Connected %s", resp.Account)
		}

	case "disconnect":
		_, err = p.walletDomain.DisconnectWallet(ctx, &model.DisconnectWalletRequest{})
		if err == nil {
			message = "Disconnected"
		}

	default:
		err = errorx.New(errorx.BadRequest, "Unknown action")
	}

	if err != nil {
		message = errorMessage(err)
	}

	if err := p.sessions.AddFlash(gc.Request, gc.Writer, message); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot save flash message: %v", err)
	}

	gc.Redirect(http.StatusSeeOther, "/")
}

func errorMessage(err error) string {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx.Message
	}

	return errorx.Unknown.Message
}
