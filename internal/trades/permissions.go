package trades

// Permission gate: pure predicates over a trade and an acting user.
// Permissions are computed from the open todo, not a stored role flag,
// so the gate cannot drift from the workflow definition.

// RoleOf resolves the acting user's role on a trade.
func RoleOf(t *Trade, userID string) Role {
	switch userID {
	case "":
		return RoleNone
	case t.BuyerUserID:
		return RoleBuyer
	case t.SellerUserID:
		return RoleSeller
	}
	return RoleNone
}

func openKindIs(t *Trade, kind TodoKind) bool {
	open := OpenTodo(t.Todos)
	return open != nil && canonicalKind(open.Kind) == kind
}

// CanApprove reports whether the user may complete the application step.
func CanApprove(t *Trade, userID string) bool {
	return openKindIs(t, TodoApplicationSent) && RoleOf(t, userID) == RoleBuyer
}

// CanMarkPaid reports whether the user may complete the payment step.
func CanMarkPaid(t *Trade, userID string) bool {
	return openKindIs(t, TodoApplicationApproved) && RoleOf(t, userID) == RoleBuyer
}

// CanMarkCompleted reports whether the user may confirm receipt.
func CanMarkCompleted(t *Trade, userID string) bool {
	return openKindIs(t, TodoPaymentConfirmed) && RoleOf(t, userID) == RoleBuyer
}

// CanCancel reports whether the user may cancel. Either party may cancel
// at any non-terminal point; only the buyer advances the happy path.
func CanCancel(t *Trade, userID string) bool {
	if RoleOf(t, userID) == RoleNone {
		return false
	}
	status := DeriveStatus(t.Todos)
	return status != StatusCompleted && status != StatusCanceled
}
