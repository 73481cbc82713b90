package internal

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"

	"frisbee/config"
	"frisbee/services"

	"github.com/julienschmidt/httprouter"
)

const (
	checkoutOrder   = "/api/checkout/:order_id"
	refundByOrder   = "/refund/order/:order_id"
	gatewayCallback = "/callback"

	sessionCookieName = "checkout_session"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	checkout   services.Checkout
	callbacks  services.Callbacks
	sessions   services.SessionStores
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf: conf,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(checkoutOrder, s.checkoutOrder)
	router.POST(refundByOrder, s.refundOrder)
	router.POST(gatewayCallback, s.gatewayCallback)
}

func (s *Server) SetCheckoutService(checkout services.Checkout) {
	s.checkout = checkout
}

func (s *Server) SetCallbackService(callbacks services.Callbacks) {
	s.callbacks = callbacks
}

func (s *Server) SetSessions(sessions services.SessionStores) {
	s.sessions = sessions
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) checkoutOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	orderId := ps.ByName("order_id")
	if orderId == "" {
		s.logger.Warn(fmt.Sprintf("[%s] checkout: empty order id", reqID))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(orderId)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] checkout: invalid order id: %s; %v", reqID, orderId, err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	store := s.sessions.ForSession(s.sessionId(w, r))
	method := r.URL.Query().Get("method")

	result, err := s.checkout.Checkout(ctx, store, id, method)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] checkout order %v", reqID, id), err)
		status := http.StatusInternalServerError
		if err == ErrOrderNotFound {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		return
	}

	s.writeJson(w, http.StatusOK, result, reqID)
}

func (s *Server) refundOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	orderId := ps.ByName("order_id")
	if orderId == "" {
		s.logger.Warn(fmt.Sprintf("[%s] refund order: empty order id", reqID))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(orderId)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] refund order: invalid order id: %s; %v", reqID, orderId, err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] refund order: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request struct {
		Amount int64 `json:"amount"`
	}
	err = DecodeJson(body, &request)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] refund order: decode request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.logger.Info(fmt.Sprintf("[%s] processing request: refund order %v, amount %d", reqID, id, request.Amount))
	err = s.checkout.Refund(ctx, id, request.Amount)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] refund order %v", reqID, id), err)
		status := http.StatusInternalServerError
		if err == ErrOrderNotFound {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) gatewayCallback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] callback: get body", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	outcome := s.callbacks.Process(ctx, body, r.Header.Get("Content-Type"), r.URL.Query())
	s.logger.Info(fmt.Sprintf("[%s] callback for order %v: %s", reqID, outcome.OrderId, outcome.Message))

	s.writeJson(w, outcome.HTTPStatus, outcome, reqID)
}

// sessionId reads the checkout session cookie, issuing a new one when the
// request carries none.
func (s *Server) sessionId(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := GenerateRequestID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (s *Server) writeJson(w http.ResponseWriter, status int, value any, reqID string) {
	data, err := EncodeJson(value)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] encode response", reqID), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(data); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] write response", reqID), err)
	}
}
