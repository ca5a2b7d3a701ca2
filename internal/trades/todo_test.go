package trades

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatusFollowsOpenTodo(t *testing.T) {
	cases := []struct {
		name  string
		todos []TodoItem
		want  TradeStatus
	}{
		{
			name:  "application sent open",
			todos: []TodoItem{{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoOpen}},
			want:  StatusApprovalRequired,
		},
		{
			name: "approval open",
			todos: []TodoItem{
				{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoApplicationApproved, Assignee: RoleBuyer, Status: TodoOpen},
			},
			want: StatusPaymentRequired,
		},
		{
			name: "payment confirmation open",
			todos: []TodoItem{
				{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoApplicationApproved, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoPaymentConfirmed, Assignee: RoleBuyer, Status: TodoOpen},
			},
			want: StatusConfirmRequired,
		},
		{
			name: "all done with completion marker",
			todos: []TodoItem{
				{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoApplicationApproved, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoPaymentConfirmed, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoTradeCompleted, Assignee: RoleBuyer, Status: TodoDone},
			},
			want: StatusCompleted,
		},
		{
			name: "canceled marker wins over completion marker",
			todos: []TodoItem{
				{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoTradeCompleted, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoTradeCanceled, Assignee: RoleSeller, Status: TodoDone},
			},
			want: StatusCanceled,
		},
		{
			name:  "deprecated inquiry alias",
			todos: []TodoItem{{Kind: TodoInquirySent, Assignee: RoleBuyer, Status: TodoOpen}},
			want:  StatusApprovalRequired,
		},
		{
			name:  "empty list",
			todos: nil,
			want:  StatusApprovalRequired,
		},
		{
			name: "malformed list falls back to last item",
			todos: []TodoItem{
				{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: TodoApplicationApproved, Assignee: RoleBuyer, Status: TodoDone},
			},
			want: StatusPaymentRequired,
		},
		{
			name: "open item of unknown kind is skipped",
			todos: []TodoItem{
				{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
				{Kind: "mystery_step", Assignee: RoleBuyer, Status: TodoOpen},
			},
			want: StatusApprovalRequired,
		},
		{
			name:  "only unmappable items",
			todos: []TodoItem{{Kind: "mystery_step", Assignee: RoleBuyer, Status: TodoOpen}},
			want:  StatusApprovalRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.todos))
		})
	}
}

func TestCompleteTodoMarksOpenItemDone(t *testing.T) {
	todos := []TodoItem{
		{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
		{Kind: TodoApplicationApproved, Assignee: RoleBuyer, Status: TodoOpen},
	}

	result, ok := CompleteTodo(todos, TodoApplicationApproved)

	assert.True(t, ok)
	assert.Equal(t, TodoDone, result[1].Status)
	// Input slice stays untouched.
	assert.Equal(t, TodoOpen, todos[1].Status)
}

func TestCompleteTodoRejectsWrongKind(t *testing.T) {
	todos := []TodoItem{
		{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoOpen},
	}

	_, ok := CompleteTodo(todos, TodoPaymentConfirmed)
	assert.False(t, ok)
}

func TestCompleteTodoAcceptsInquiryAlias(t *testing.T) {
	todos := []TodoItem{
		{Kind: TodoInquirySent, Assignee: RoleBuyer, Status: TodoOpen},
	}

	result, ok := CompleteTodo(todos, TodoApplicationSent)

	assert.True(t, ok)
	assert.Equal(t, TodoDone, result[0].Status)
	// The stored alias is preserved, not rewritten.
	assert.Equal(t, TodoInquirySent, result[0].Kind)
}

func TestBuildTodosFromStatusRoundTrips(t *testing.T) {
	for _, status := range []TradeStatus{
		StatusApprovalRequired,
		StatusPaymentRequired,
		StatusConfirmRequired,
		StatusCompleted,
		StatusCanceled,
	} {
		todos := BuildTodosFromStatus(status)
		assert.Equal(t, status, DeriveStatus(todos), "status %s should round-trip", status)
	}
}

func TestBuildTodosFromStatusHasAtMostOneOpenItem(t *testing.T) {
	for _, status := range []TradeStatus{
		StatusApprovalRequired,
		StatusPaymentRequired,
		StatusConfirmRequired,
		StatusCompleted,
		StatusCanceled,
	} {
		open := 0
		for _, todo := range BuildTodosFromStatus(status) {
			if todo.Status == TodoOpen {
				open++
			}
		}
		if status == StatusCompleted || status == StatusCanceled {
			assert.Zero(t, open, "terminal status %s must have no open items", status)
		} else {
			assert.Equal(t, 1, open, "active status %s must have exactly one open item", status)
		}
	}
}
