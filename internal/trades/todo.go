package trades

// The todo engine is pure: every function here is a deterministic
// function of its inputs with no I/O.

// canonicalKind folds deprecated aliases into their canonical kind.
func canonicalKind(kind TodoKind) TodoKind {
	if kind == TodoInquirySent {
		return TodoApplicationSent
	}
	return kind
}

var kindToStatus = map[TodoKind]TradeStatus{
	TodoApplicationSent:     StatusApprovalRequired,
	TodoInquirySent:         StatusApprovalRequired,
	TodoApplicationApproved: StatusPaymentRequired,
	TodoPaymentConfirmed:    StatusConfirmRequired,
	TodoTradeCompleted:      StatusCompleted,
	TodoTradeCanceled:       StatusCanceled,
}

// nextTodoKind is the fixed follow-on table. Appending the next item is
// the transition service's responsibility, not CompleteTodo's.
var nextTodoKind = map[TodoKind]TodoKind{
	TodoApplicationSent:     TodoApplicationApproved,
	TodoApplicationApproved: TodoPaymentConfirmed,
	TodoPaymentConfirmed:    TodoTradeCompleted,
}

// Every happy-path step is consumed by the buyer.
var defaultAssignee = map[TodoKind]Role{
	TodoApplicationSent:     RoleBuyer,
	TodoApplicationApproved: RoleBuyer,
	TodoPaymentConfirmed:    RoleBuyer,
	TodoTradeCompleted:      RoleBuyer,
}

// OpenTodo returns the single open item, or nil when the trade is
// terminal (or the list is malformed and holds none).
func OpenTodo(todos []TodoItem) *TodoItem {
	for i := range todos {
		if todos[i].Status == TodoOpen {
			return &todos[i]
		}
	}
	return nil
}

// CompleteTodo returns a new list with the open item of the given kind
// marked done. When no open item of that kind exists the input is
// returned unchanged and ok is false.
func CompleteTodo(todos []TodoItem, kind TodoKind) (result []TodoItem, ok bool) {
	want := canonicalKind(kind)
	for i := range todos {
		if todos[i].Status == TodoOpen && canonicalKind(todos[i].Kind) == want {
			out := make([]TodoItem, len(todos))
			copy(out, todos)
			out[i].Status = TodoDone
			return out, true
		}
	}
	return todos, false
}

// DeriveStatus maps a todo list to the trade status. The status field on
// a trade is always the output of this function, never authored.
//
// The fallbacks keep the function total for malformed lists: an open item
// of an unknown kind is skipped, the latest mappable item decides, and an
// empty (or fully unmappable) list derives APPROVAL_REQUIRED. A
// well-formed trade never reaches them.
func DeriveStatus(todos []TodoItem) TradeStatus {
	if open := OpenTodo(todos); open != nil {
		if status, ok := kindToStatus[canonicalKind(open.Kind)]; ok {
			return status
		}
	}
	for _, todo := range todos {
		if todo.Kind == TodoTradeCanceled {
			return StatusCanceled
		}
	}
	for _, todo := range todos {
		if todo.Kind == TodoTradeCompleted {
			return StatusCompleted
		}
	}
	for i := len(todos) - 1; i >= 0; i-- {
		if status, ok := kindToStatus[canonicalKind(todos[i].Kind)]; ok {
			return status
		}
	}
	return StatusApprovalRequired
}

// todoSequence is the canonical happy-path order.
var todoSequence = []TodoKind{
	TodoApplicationSent,
	TodoApplicationApproved,
	TodoPaymentConfirmed,
	TodoTradeCompleted,
}

// BuildTodosFromStatus is the inverse constructor used only when
// bootstrapping trades created out-of-band: all steps before the target
// are done, the target step is open, and terminal statuses are fully
// closed.
func BuildTodosFromStatus(status TradeStatus) []TodoItem {
	switch status {
	case StatusCompleted:
		todos := make([]TodoItem, 0, len(todoSequence))
		for _, kind := range todoSequence {
			todos = append(todos, TodoItem{Kind: kind, Assignee: defaultAssignee[kind], Status: TodoDone})
		}
		return todos
	case StatusCanceled:
		return []TodoItem{
			{Kind: TodoApplicationSent, Assignee: RoleBuyer, Status: TodoDone},
			{Kind: TodoTradeCanceled, Assignee: RoleBuyer, Status: TodoDone},
		}
	}

	target := TodoApplicationSent
	switch status {
	case StatusPaymentRequired:
		target = TodoApplicationApproved
	case StatusConfirmRequired:
		target = TodoPaymentConfirmed
	}

	var todos []TodoItem
	for _, kind := range todoSequence {
		item := TodoItem{Kind: kind, Assignee: defaultAssignee[kind], Status: TodoDone}
		if kind == target {
			item.Status = TodoOpen
			todos = append(todos, item)
			break
		}
		todos = append(todos, item)
	}
	return todos
}
