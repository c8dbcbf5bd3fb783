package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/izajlabs/go-adminlist/components/listview"
	"github.com/izajlabs/go-adminlist/components/listview/commands"
)

// Executor is the mutation surface transports depend on.
type Executor interface {
	Refresh(ctx context.Context, input commands.RefreshListInput) error
	UpdateStatus(ctx context.Context, input commands.UpdateStatusInput) error
	Delete(ctx context.Context, input commands.DeleteItemInput) error
	Reply(ctx context.Context, input commands.ReplyInput) error
	Maintenance(ctx context.Context, input commands.SetMaintenanceInput) error
}

// CommandExecutor satisfies Executor by delegating to go-command commanders.
type CommandExecutor struct {
	RefreshCommander     gocommand.Commander[commands.RefreshListInput]
	StatusCommander      gocommand.Commander[commands.UpdateStatusInput]
	DeleteCommander      gocommand.Commander[commands.DeleteItemInput]
	ReplyCommander       gocommand.Commander[commands.ReplyInput]
	MaintenanceCommander gocommand.Commander[commands.SetMaintenanceInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshListInput) error {
	if e.RefreshCommander == nil {
		return errors.New("httpapi: refresh commander not configured")
	}
	return e.RefreshCommander.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateStatus(ctx context.Context, input commands.UpdateStatusInput) error {
	if e.StatusCommander == nil {
		return errors.New("httpapi: status commander not configured")
	}
	return e.StatusCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Delete(ctx context.Context, input commands.DeleteItemInput) error {
	if e.DeleteCommander == nil {
		return errors.New("httpapi: delete commander not configured")
	}
	return e.DeleteCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Reply(ctx context.Context, input commands.ReplyInput) error {
	if e.ReplyCommander == nil {
		return errors.New("httpapi: reply commander not configured")
	}
	return e.ReplyCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Maintenance(ctx context.Context, input commands.SetMaintenanceInput) error {
	if e.MaintenanceCommander == nil {
		return errors.New("httpapi: maintenance commander not configured")
	}
	return e.MaintenanceCommander.Execute(ctx, input)
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Refresh     gocommand.Commander[commands.RefreshListInput]
	Status      gocommand.Commander[commands.UpdateStatusInput]
	Delete      gocommand.Commander[commands.DeleteItemInput]
	Reply       gocommand.Commander[commands.ReplyInput]
	Maintenance gocommand.Commander[commands.SetMaintenanceInput]
	Controller  *listview.Controller
}

// HandleListView serves the JSON view snapshot for one page.
func (h *Handlers) HandleListView(w http.ResponseWriter, r *http.Request, pageCode string) {
	if h.Controller == nil {
		http.Error(w, "controller not configured", http.StatusInternalServerError)
		return
	}
	view, err := h.Controller.ViewPayload(r.Context(), pageCode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshListInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Refresh.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload commands.UpdateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Status.Execute(r.Context(), payload); err != nil {
		writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleDeleteItem(w http.ResponseWriter, r *http.Request, pageCode, itemID string) {
	input := commands.DeleteItemInput{PageCode: pageCode, ItemID: itemID}
	if err := h.Delete.Execute(r.Context(), input); err != nil {
		writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReply(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReplyInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Reply.Execute(r.Context(), payload); err != nil {
		writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleMaintenance(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetMaintenanceInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Maintenance.Execute(r.Context(), payload); err != nil {
		writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// writeMutationError maps the in-flight guard to 409 so duplicate submissions
// are distinguishable from server failures.
func writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, listview.ErrMutationInFlight) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
