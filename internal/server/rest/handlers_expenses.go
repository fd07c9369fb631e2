package rest

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/travelmate/internal/server/services"
)

const msgExpenseNotFound = "Expense not found"

// expenseIDs reads the trip and expense ids from the path.
func expenseIDs(r *http.Request) (tripID, id int64, err error) {
	if tripID, err = pathID(r, "tripId", msgTripNotFound); err != nil {
		return 0, 0, err
	}
	if id, err = pathID(r, "id", msgExpenseNotFound); err != nil {
		return 0, 0, err
	}
	return tripID, id, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := s.svc.Expenses.List(r.Context(), principal(r).ID, tripID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Expenses retrieved successfully", list)
}

func (s *Server) handleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	groups, err := s.svc.Expenses.ByCategory(r.Context(), principal(r).ID, tripID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Expenses by category retrieved successfully", groups)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := expenseIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	e, err := s.svc.Expenses.Get(r.Context(), principal(r).ID, tripID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Expense retrieved successfully", e)
}

// handleCreateExpense accepts JSON, or a multipart form with an optional
// "receipt" image.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req createExpenseRequest
	var receipt *services.Upload

	if isMultipart(r) {
		if err := s.parseMultipart(w, r); err != nil {
			s.fail(w, r, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		var closer io.Closer
		receipt, closer, err = s.formFile(r, "receipt")
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if closer != nil {
			defer closer.Close()
		}
		if err := req.fromForm(r.MultipartForm.Value); err != nil {
			s.fail(w, r, err)
			return
		}
		err = s.validator.Struct(&req)
	} else {
		err = s.bind(w, r, &req)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	e, err := req.expense()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.svc.Expenses.Create(r.Context(), principal(r).ID, tripID, e, receipt)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Expense added successfully", created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := expenseIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req updateExpenseRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	upd, err := req.update()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	e, err := s.svc.Expenses.Update(r.Context(), principal(r).ID, tripID, id, upd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Expense updated successfully", e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := expenseIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Expenses.Delete(r.Context(), principal(r).ID, tripID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Expense deleted successfully", nil)
}
