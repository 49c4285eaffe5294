package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramID = "id"

	queryParamUserID    = "user_id"
	queryParamClientID  = "client_id"
	queryParamDate      = "date"
	queryParamStartDate = "start"
	queryParamEndDate   = "end"

	queryParamActorID      = "actor_id"
	queryParamResourceType = "resource_type"
	queryParamAction       = "action"
	queryParamStatus       = "status"
	queryParamSince        = "since"
	queryParamLimit        = "limit"
	queryParamOffset       = "offset"
	queryParamKey          = "key"

	headerContentDisposition = "Content-Disposition"

	kindClient  = "client"
	kindProject = "project"
	kindLink    = "link title"
	kindScript  = "script title"

	csvExt   = "csv"
	excelExt = "xlsx"

	// purgeConfirmPhrase must be sent verbatim before a bulk delete runs.
	purgeConfirmPhrase = "PURGE"
)

const (
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidID               = "invalid id"
	msgInvalidUserID           = "invalid user_id"
	msgInvalidClientID         = "invalid client_id"
	msgInvalidProjectID        = "invalid project_id"
	msgInvalidCredentials      = "invalid username or password"
	msgAccountDisabled         = "account is disabled"
	msgGenerateTokenFail       = "failed to generate token"
	msgPasswordProcessFail     = "failed to process password"
	msgCurrentPasswordRequired = "current password is required"
	msgCurrentPasswordWrong    = "current password is incorrect"
	msgPasswordChanged         = "password updated"
	msgCreateUserFail          = "failed to create user"
	msgListUsersFail           = "failed to list users"
	msgUpdateUserFail          = "failed to update user"
	msgCreateClientFail       = "failed to create client"
	msgListClientsFail        = "failed to list clients"
	msgUpdateClientFail       = "failed to update client"
	msgCreateProjectFail      = "failed to create project"
	msgListProjectsFail       = "failed to list projects"
	msgUpdateProjectFail      = "failed to update project"
	msgClientInactive         = "client is not active"
	msgProjectClientMismatch  = "project does not belong to the selected client"
	msgTargetUserInactive     = "cannot create entries for an inactive user"
	msgCreateEntryFail        = "failed to create time entry"
	msgListEntriesFail        = "failed to list time entries"
	msgUpdateEntryFail        = "failed to update time entry"
	msgDeleteEntryFail        = "failed to delete time entry"
	msgHistoryFail            = "failed to load history"
	msgPurgeConfirmRequired   = "confirmation phrase required"
	msgPurgeFail              = "failed to purge time entries"
	msgSummaryFail            = "failed to build report"
	msgExportFail             = "failed to build export"
	msgCreatePayPeriodFail    = "failed to create pay period"
	msgListPayPeriodsFail     = "failed to list pay periods"
	msgUpdatePayPeriodFail    = "failed to update pay period"
	msgDeletePayPeriodFail    = "failed to delete pay period"
	msgGeneratePeriodsFail    = "failed to generate pay periods"
	msgDateRequired           = "date is required"
	msgCreateLinkFail         = "failed to create link"
	msgListLinksFail          = "failed to list links"
	msgUpdateLinkFail         = "failed to update link"
	msgDeleteLinkFail         = "failed to delete link"
	msgCreateScriptFail       = "failed to create script"
	msgListScriptsFail        = "failed to list scripts"
	msgUpdateScriptFail       = "failed to update script"
	msgDeleteScriptFail       = "failed to delete script"
	msgURLRequired            = "url is required"
	msgListAuditFail          = "failed to list audit events"
	msgInvalidTimestamp       = "invalid timestamp, expected RFC3339"
	msgInvalidLimit           = "invalid limit"
	msgInvalidOffset          = "invalid offset"
	msgArchiveKeyRequired     = "key is required"
	msgArchivingDisabled      = "export archiving is not enabled"
	msgArchiveURLFail         = "failed to generate archive download"
)
