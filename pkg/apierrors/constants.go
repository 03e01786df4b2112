package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailReorderTask    = "failReorderTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"

	MsgInvalidAuthPayload = "invalidAuthPayload"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"
	MsgEmailTaken         = "emailTaken"
	MsgUnauthorized       = "unauthorized"

	MsgAccessDenied = "accessDenied"
	MsgForbidden    = "forbidden"
	MsgConflict     = "conflict"

	MsgInvalidAuditQuery = "invalidAuditQuery"
	MsgFailListAudit     = "failListAudit"

	MsgOrganizationNotFound     = "organizationNotFound"
	MsgInvalidOrganizationInput = "invalidOrganizationPayload"
	MsgFailGetOrganization      = "failGetOrganization"
	MsgFailCreateOrganization   = "failCreateOrganization"

	MsgUserNotFound  = "userNotFound"
	MsgFailListUsers = "failListUsers"
	MsgFailProfile   = "failProfile"

	MsgTooManyRequests = "tooManyRequests"
)
