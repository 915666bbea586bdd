package ipc

import (
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"callsheet/internal/api"
	"callsheet/internal/store"
	"callsheet/internal/uploads"
)

const dialTimeout = 2 * time.Second

// Client talks to a running daemon over its Unix socket.
type Client struct {
	rpc *rpc.Client
}

// Dial connects to the daemon socket at path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon socket %s: %w", path, err)
	}
	return &Client{rpc: jsonrpc.NewClient(conn)}, nil
}

// Close releases the socket connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}

func (c *Client) call(method string, req, resp any) error {
	return c.rpc.Call(ServiceName+"."+method, req, resp)
}

func (c *Client) Status() (api.DaemonStatus, error) {
	var resp StatusResponse
	if err := c.call("Status", StatusRequest{}, &resp); err != nil {
		return api.DaemonStatus{}, err
	}
	return resp.Status, nil
}

func (c *Client) Shutdown() (bool, error) {
	var resp ShutdownResponse
	if err := c.call("Shutdown", ShutdownRequest{}, &resp); err != nil {
		return false, err
	}
	return resp.Stopping, nil
}

func (c *Client) PriceDeliverable(input api.DeliverableInput) (api.Quote, error) {
	var resp PriceResponse
	if err := c.call("PriceDeliverable", PriceDeliverableRequest{Input: input}, &resp); err != nil {
		return api.Quote{}, err
	}
	return resp.Quote, nil
}

func (c *Client) PriceShoot(input api.ShootInput) (api.Quote, error) {
	var resp PriceResponse
	if err := c.call("PriceShoot", PriceShootRequest{Input: input}, &resp); err != nil {
		return api.Quote{}, err
	}
	return resp.Quote, nil
}

func (c *Client) RateList() (map[string]float64, error) {
	var resp RateListResponse
	if err := c.call("RateList", RateListRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Rates, nil
}

func (c *Client) RateSet(key string, value float64) error {
	var resp RateSetResponse
	return c.call("RateSet", RateSetRequest{Key: key, Value: value}, &resp)
}

func (c *Client) RateDelete(key string) error {
	var resp RateDeleteResponse
	return c.call("RateDelete", RateDeleteRequest{Key: key}, &resp)
}

func (c *Client) ClientSave(client store.Client) (store.Client, error) {
	var resp ClientResponse
	if err := c.call("ClientSave", ClientSaveRequest{Client: client}, &resp); err != nil {
		return store.Client{}, err
	}
	return resp.Client, nil
}

func (c *Client) ClientList() ([]store.Client, error) {
	var resp ClientListResponse
	if err := c.call("ClientList", ClientListRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

func (c *Client) ClientDelete(id int64) error {
	var resp ClientDeleteResponse
	return c.call("ClientDelete", ClientDeleteRequest{ID: id}, &resp)
}

func (c *Client) ProjectSave(project store.Project) (store.Project, error) {
	var resp ProjectResponse
	if err := c.call("ProjectSave", ProjectSaveRequest{Project: project}, &resp); err != nil {
		return store.Project{}, err
	}
	return resp.Project, nil
}

func (c *Client) ProjectList(clientID int64) ([]store.Project, error) {
	var resp ProjectListResponse
	if err := c.call("ProjectList", ProjectListRequest{ClientID: clientID}, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *Client) ProjectDelete(id int64) error {
	var resp ProjectDeleteResponse
	return c.call("ProjectDelete", ProjectDeleteRequest{ID: id}, &resp)
}

func (c *Client) DeliverableSave(d store.Deliverable) (store.Deliverable, error) {
	var resp DeliverableResponse
	if err := c.call("DeliverableSave", DeliverableSaveRequest{Deliverable: d}, &resp); err != nil {
		return store.Deliverable{}, err
	}
	return resp.Deliverable, nil
}

func (c *Client) DeliverableList(projectID int64) ([]store.Deliverable, error) {
	var resp DeliverableListResponse
	if err := c.call("DeliverableList", DeliverableListRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return resp.Deliverables, nil
}

func (c *Client) DeliverableDelete(id int64) error {
	var resp DeliverableDeleteResponse
	return c.call("DeliverableDelete", DeliverableDeleteRequest{ID: id}, &resp)
}

func (c *Client) ShootSave(sh store.Shoot) (store.Shoot, error) {
	var resp ShootResponse
	if err := c.call("ShootSave", ShootSaveRequest{Shoot: sh}, &resp); err != nil {
		return store.Shoot{}, err
	}
	return resp.Shoot, nil
}

func (c *Client) ShootList(projectID int64) ([]store.Shoot, error) {
	var resp ShootListResponse
	if err := c.call("ShootList", ShootListRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return resp.Shoots, nil
}

func (c *Client) ShootDelete(id int64) error {
	var resp ShootDeleteResponse
	return c.call("ShootDelete", ShootDeleteRequest{ID: id}, &resp)
}

func (c *Client) InvoiceGenerate(projectID int64) (store.Invoice, error) {
	var resp InvoiceResponse
	if err := c.call("InvoiceGenerate", InvoiceGenerateRequest{ProjectID: projectID}, &resp); err != nil {
		return store.Invoice{}, err
	}
	return resp.Invoice, nil
}

func (c *Client) InvoiceList(projectID int64) ([]store.Invoice, error) {
	var resp InvoiceListResponse
	if err := c.call("InvoiceList", InvoiceListRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}

func (c *Client) InvoiceShow(id int64) (store.Invoice, error) {
	var resp InvoiceResponse
	if err := c.call("InvoiceShow", InvoiceShowRequest{ID: id}, &resp); err != nil {
		return store.Invoice{}, err
	}
	return resp.Invoice, nil
}

func (c *Client) UploadSubmit(req UploadSubmitRequest) (uploads.View, error) {
	var resp UploadResponse
	if err := c.call("UploadSubmit", req, &resp); err != nil {
		return uploads.View{}, err
	}
	return resp.Job, nil
}

func (c *Client) UploadList() ([]uploads.View, error) {
	var resp UploadListResponse
	if err := c.call("UploadList", UploadListRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *Client) UploadDescribe(id string) (uploads.View, error) {
	var resp UploadResponse
	if err := c.call("UploadDescribe", UploadActionRequest{ID: id}, &resp); err != nil {
		return uploads.View{}, err
	}
	return resp.Job, nil
}

func (c *Client) UploadPause(id string) error {
	var resp UploadActionResponse
	return c.call("UploadPause", UploadActionRequest{ID: id}, &resp)
}

func (c *Client) UploadResume(id string) error {
	var resp UploadActionResponse
	return c.call("UploadResume", UploadActionRequest{ID: id}, &resp)
}

func (c *Client) UploadDismiss(id string) error {
	var resp UploadActionResponse
	return c.call("UploadDismiss", UploadActionRequest{ID: id}, &resp)
}

func (c *Client) UploadResolve(id, resolution string, bulk bool) error {
	var resp UploadResolveResponse
	return c.call("UploadResolve", UploadResolveRequest{ID: id, Resolution: resolution, Bulk: bulk}, &resp)
}
