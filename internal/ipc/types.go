package ipc

import (
	"callsheet/internal/api"
	"callsheet/internal/store"
	"callsheet/internal/uploads"
)

// ServiceName is the RPC service identifier registered on the socket.
const ServiceName = "Callsheet"

type StatusRequest struct{}

type StatusResponse struct {
	Status api.DaemonStatus `json:"status"`
}

type ShutdownRequest struct{}

type ShutdownResponse struct {
	Stopping bool `json:"stopping"`
}

type PriceDeliverableRequest struct {
	Input api.DeliverableInput `json:"input"`
}

type PriceShootRequest struct {
	Input api.ShootInput `json:"input"`
}

type PriceResponse struct {
	Quote api.Quote `json:"quote"`
}

type RateListRequest struct{}

type RateListResponse struct {
	Rates map[string]float64 `json:"rates"`
}

type RateSetRequest struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type RateSetResponse struct{}

type RateDeleteRequest struct {
	Key string `json:"key"`
}

type RateDeleteResponse struct{}

type ClientSaveRequest struct {
	Client store.Client `json:"client"`
}

type ClientResponse struct {
	Client store.Client `json:"client"`
}

type ClientListRequest struct{}

type ClientListResponse struct {
	Clients []store.Client `json:"clients"`
}

type ClientDeleteRequest struct {
	ID int64 `json:"id"`
}

type ClientDeleteResponse struct{}

type ProjectSaveRequest struct {
	Project store.Project `json:"project"`
}

type ProjectResponse struct {
	Project store.Project `json:"project"`
}

type ProjectListRequest struct {
	ClientID int64 `json:"clientId"`
}

type ProjectListResponse struct {
	Projects []store.Project `json:"projects"`
}

type ProjectDeleteRequest struct {
	ID int64 `json:"id"`
}

type ProjectDeleteResponse struct{}

type DeliverableSaveRequest struct {
	Deliverable store.Deliverable `json:"deliverable"`
}

type DeliverableResponse struct {
	Deliverable store.Deliverable `json:"deliverable"`
}

type DeliverableListRequest struct {
	ProjectID int64 `json:"projectId"`
}

type DeliverableListResponse struct {
	Deliverables []store.Deliverable `json:"deliverables"`
}

type DeliverableDeleteRequest struct {
	ID int64 `json:"id"`
}

type DeliverableDeleteResponse struct{}

type ShootSaveRequest struct {
	Shoot store.Shoot `json:"shoot"`
}

type ShootResponse struct {
	Shoot store.Shoot `json:"shoot"`
}

type ShootListRequest struct {
	ProjectID int64 `json:"projectId"`
}

type ShootListResponse struct {
	Shoots []store.Shoot `json:"shoots"`
}

type ShootDeleteRequest struct {
	ID int64 `json:"id"`
}

type ShootDeleteResponse struct{}

type InvoiceGenerateRequest struct {
	ProjectID int64 `json:"projectId"`
}

type InvoiceResponse struct {
	Invoice store.Invoice `json:"invoice"`
}

type InvoiceListRequest struct {
	ProjectID int64 `json:"projectId"`
}

type InvoiceListResponse struct {
	Invoices []store.Invoice `json:"invoices"`
}

type InvoiceShowRequest struct {
	ID int64 `json:"id"`
}

type UploadSubmitRequest struct {
	Path         string `json:"path"`
	ProjectID    int64  `json:"projectId"`
	FolderID     string `json:"folderId"`
	FolderUpload bool   `json:"folderUpload"`
}

type UploadResponse struct {
	Job uploads.View `json:"job"`
}

type UploadListRequest struct{}

type UploadListResponse struct {
	Jobs []uploads.View `json:"jobs"`
}

type UploadActionRequest struct {
	ID string `json:"id"`
}

type UploadActionResponse struct{}

type UploadResolveRequest struct {
	ID         string `json:"id"`
	Resolution string `json:"resolution"`
	Bulk       bool   `json:"bulk"`
}

type UploadResolveResponse struct{}
