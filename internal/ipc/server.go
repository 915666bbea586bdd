package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"callsheet/internal/api"
	"callsheet/internal/logging"
	"callsheet/internal/store"
)

// Controller is what the socket exposes of the daemon: the shared service
// surface plus lifecycle hooks.
type Controller interface {
	Service() *api.Service
	Status(ctx context.Context) api.DaemonStatus
}

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. shutdown is
// invoked when a client requests daemon shutdown; it must not block.
func NewServer(ctx context.Context, path string, ctrl Controller, shutdown func(), logger *slog.Logger) (*Server, error) {
	if ctrl == nil {
		return nil, errors.New("ipc server requires a controller")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	svc := &service{ctrl: ctrl, shutdown: shutdown, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName(ServiceName, svc); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logging.NewComponentLogger(logger, "ipc"),
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("ipc server listening", "socket", s.path)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.FieldError, err)
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket", "socket", s.path, logging.FieldError, err)
	}
}

type service struct {
	ctrl     Controller
	shutdown func()
	logger   *slog.Logger
	ctx      context.Context
}

func (s *service) api() *api.Service {
	return s.ctrl.Service()
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	resp.Status = s.ctrl.Status(s.ctx)
	return nil
}

func (s *service) Shutdown(_ ShutdownRequest, resp *ShutdownResponse) error {
	if s.shutdown != nil {
		s.shutdown()
		resp.Stopping = true
	}
	return nil
}

func (s *service) PriceDeliverable(req PriceDeliverableRequest, resp *PriceResponse) error {
	quote, err := s.api().QuoteDeliverable(s.ctx, req.Input.ToPricing())
	if err != nil {
		return err
	}
	resp.Quote = quote
	return nil
}

func (s *service) PriceShoot(req PriceShootRequest, resp *PriceResponse) error {
	quote, err := s.api().QuoteShoot(s.ctx, req.Input.ToPricing())
	if err != nil {
		return err
	}
	resp.Quote = quote
	return nil
}

func (s *service) RateList(_ RateListRequest, resp *RateListResponse) error {
	rates, err := s.api().Store().RatesSnapshot(s.ctx)
	if err != nil {
		return err
	}
	resp.Rates = rates
	return nil
}

func (s *service) RateSet(req RateSetRequest, _ *RateSetResponse) error {
	return s.api().Store().SetRate(s.ctx, req.Key, req.Value)
}

func (s *service) RateDelete(req RateDeleteRequest, _ *RateDeleteResponse) error {
	return s.api().Store().DeleteRate(s.ctx, req.Key)
}

func (s *service) ClientSave(req ClientSaveRequest, resp *ClientResponse) error {
	var (
		saved *store.Client
		err   error
	)
	if req.Client.ID == 0 {
		saved, err = s.api().Store().CreateClient(s.ctx, req.Client)
	} else {
		saved, err = s.api().Store().UpdateClient(s.ctx, req.Client)
	}
	if err != nil {
		return err
	}
	resp.Client = *saved
	return nil
}

func (s *service) ClientList(_ ClientListRequest, resp *ClientListResponse) error {
	clients, err := s.api().Store().ListClients(s.ctx)
	if err != nil {
		return err
	}
	resp.Clients = clients
	return nil
}

func (s *service) ClientDelete(req ClientDeleteRequest, _ *ClientDeleteResponse) error {
	return s.api().Store().DeleteClient(s.ctx, req.ID)
}

func (s *service) ProjectSave(req ProjectSaveRequest, resp *ProjectResponse) error {
	var (
		saved *store.Project
		err   error
	)
	if req.Project.ID == 0 {
		saved, err = s.api().Store().CreateProject(s.ctx, req.Project)
	} else {
		saved, err = s.api().Store().UpdateProject(s.ctx, req.Project)
	}
	if err != nil {
		return err
	}
	resp.Project = *saved
	return nil
}

func (s *service) ProjectList(req ProjectListRequest, resp *ProjectListResponse) error {
	projects, err := s.api().Store().ListProjects(s.ctx, req.ClientID)
	if err != nil {
		return err
	}
	resp.Projects = projects
	return nil
}

func (s *service) ProjectDelete(req ProjectDeleteRequest, _ *ProjectDeleteResponse) error {
	return s.api().Store().DeleteProject(s.ctx, req.ID)
}

func (s *service) DeliverableSave(req DeliverableSaveRequest, resp *DeliverableResponse) error {
	saved, err := s.api().Store().SaveDeliverable(s.ctx, req.Deliverable)
	if err != nil {
		return err
	}
	resp.Deliverable = *saved
	return nil
}

func (s *service) DeliverableList(req DeliverableListRequest, resp *DeliverableListResponse) error {
	deliverables, err := s.api().Store().ListDeliverables(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Deliverables = deliverables
	return nil
}

func (s *service) DeliverableDelete(req DeliverableDeleteRequest, _ *DeliverableDeleteResponse) error {
	return s.api().Store().DeleteDeliverable(s.ctx, req.ID)
}

func (s *service) ShootSave(req ShootSaveRequest, resp *ShootResponse) error {
	saved, err := s.api().SaveShoot(s.ctx, req.Shoot)
	if err != nil {
		return err
	}
	resp.Shoot = *saved
	return nil
}

func (s *service) ShootList(req ShootListRequest, resp *ShootListResponse) error {
	shoots, err := s.api().Store().ListShoots(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Shoots = shoots
	return nil
}

func (s *service) ShootDelete(req ShootDeleteRequest, _ *ShootDeleteResponse) error {
	return s.api().Store().DeleteShoot(s.ctx, req.ID)
}

func (s *service) InvoiceGenerate(req InvoiceGenerateRequest, resp *InvoiceResponse) error {
	invoice, err := s.api().GenerateInvoice(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Invoice = *invoice
	return nil
}

func (s *service) InvoiceList(req InvoiceListRequest, resp *InvoiceListResponse) error {
	invoices, err := s.api().Store().ListInvoices(s.ctx, req.ProjectID)
	if err != nil {
		return err
	}
	resp.Invoices = invoices
	return nil
}

func (s *service) InvoiceShow(req InvoiceShowRequest, resp *InvoiceResponse) error {
	invoice, err := s.api().Store().GetInvoice(s.ctx, req.ID)
	if err != nil {
		return err
	}
	resp.Invoice = *invoice
	return nil
}

func (s *service) UploadSubmit(req UploadSubmitRequest, resp *UploadResponse) error {
	view, err := s.api().SubmitUpload(s.ctx, req.Path, req.ProjectID, req.FolderID, req.FolderUpload)
	if err != nil {
		return err
	}
	resp.Job = view
	return nil
}

func (s *service) UploadList(_ UploadListRequest, resp *UploadListResponse) error {
	resp.Jobs = s.api().Uploads()
	return nil
}

func (s *service) UploadDescribe(req UploadActionRequest, resp *UploadResponse) error {
	view, err := s.api().Upload(req.ID)
	if err != nil {
		return err
	}
	resp.Job = view
	return nil
}

func (s *service) UploadPause(req UploadActionRequest, _ *UploadActionResponse) error {
	return s.api().PauseUpload(req.ID)
}

func (s *service) UploadResume(req UploadActionRequest, _ *UploadActionResponse) error {
	return s.api().ResumeUpload(req.ID)
}

func (s *service) UploadDismiss(req UploadActionRequest, _ *UploadActionResponse) error {
	return s.api().DismissUpload(req.ID)
}

func (s *service) UploadResolve(req UploadResolveRequest, _ *UploadResolveResponse) error {
	return s.api().ResolveUpload(req.ID, req.Resolution, req.Bulk)
}
