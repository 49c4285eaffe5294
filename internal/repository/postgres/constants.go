package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound      = "user not found"
	errClientNotFound    = "client not found"
	errProjectNotFound   = "project not found"
	errEntryNotFound     = "entry not found"
	errPayPeriodNotFound = "pay period not found"
	errLinkNotFound      = "link not found"
	errScriptNotFound    = "script not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"
	errFailedListUsersFmt  = "failed to list users: %w"
	errFailedScanUserFmt   = "failed to scan user: %w"
	errFailedUpdateUserFmt = "failed to update user: %w"

	errFailedCreateClientFmt = "failed to create client: %w"
	errFailedGetClientFmt    = "failed to get client: %w"
	errFailedListClientsFmt  = "failed to list clients: %w"
	errFailedScanClientFmt   = "failed to scan client: %w"
	errFailedUpdateClientFmt = "failed to update client: %w"

	errFailedCreateProjectFmt = "failed to create project: %w"
	errFailedGetProjectFmt    = "failed to get project: %w"
	errFailedListProjectsFmt  = "failed to list projects: %w"
	errFailedScanProjectFmt   = "failed to scan project: %w"
	errFailedUpdateProjectFmt = "failed to update project: %w"

	errFailedCreateEntryFmt = "failed to create time entry: %w"
	errFailedGetEntryFmt    = "failed to get time entry: %w"
	errFailedListEntriesFmt = "failed to list time entries: %w"
	errFailedScanEntryFmt   = "failed to scan time entry: %w"
	errFailedUpdateEntryFmt = "failed to update time entry: %w"
	errFailedDeleteEntryFmt = "failed to delete time entry: %w"
	errFailedPurgeEntriesFmt = "failed to purge time entries: %w"
	errFailedHistoryFmt     = "failed to load entry history: %w"

	errFailedCreatePayPeriodFmt = "failed to create pay period: %w"
	errFailedGetPayPeriodFmt    = "failed to get pay period: %w"
	errFailedListPayPeriodsFmt  = "failed to list pay periods: %w"
	errFailedScanPayPeriodFmt   = "failed to scan pay period: %w"
	errFailedUpdatePayPeriodFmt = "failed to update pay period: %w"
	errFailedDeletePayPeriodFmt = "failed to delete pay period: %w"
	errFailedMaxPeriodNumberFmt = "failed to read max period number: %w"
	errFailedCountYearFmt       = "failed to count periods for year: %w"
	errFailedStartTransactionFmt = "failed to start transaction: %w"
	errFailedCommitTransactionFmt = "failed to commit transaction: %w"

	errFailedCreateLinkFmt = "failed to create link: %w"
	errFailedGetLinkFmt    = "failed to get link: %w"
	errFailedListLinksFmt  = "failed to list links: %w"
	errFailedScanLinkFmt   = "failed to scan link: %w"
	errFailedUpdateLinkFmt = "failed to update link: %w"
	errFailedDeleteLinkFmt = "failed to delete link: %w"

	errFailedCreateScriptFmt = "failed to create script: %w"
	errFailedGetScriptFmt    = "failed to get script: %w"
	errFailedListScriptsFmt  = "failed to list scripts: %w"
	errFailedScanScriptFmt   = "failed to scan script: %w"
	errFailedUpdateScriptFmt = "failed to update script: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }

	errFailedCreateUser = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser    = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedListUsers  = func(err error) error { return fmt.Errorf(errFailedListUsersFmt, err) }
	errFailedScanUser   = func(err error) error { return fmt.Errorf(errFailedScanUserFmt, err) }
	errFailedUpdateUser = func(err error) error { return fmt.Errorf(errFailedUpdateUserFmt, err) }

	errFailedCreateClient = func(err error) error { return fmt.Errorf(errFailedCreateClientFmt, err) }
	errFailedGetClient    = func(err error) error { return fmt.Errorf(errFailedGetClientFmt, err) }
	errFailedListClients  = func(err error) error { return fmt.Errorf(errFailedListClientsFmt, err) }
	errFailedScanClient   = func(err error) error { return fmt.Errorf(errFailedScanClientFmt, err) }
	errFailedUpdateClient = func(err error) error { return fmt.Errorf(errFailedUpdateClientFmt, err) }

	errFailedCreateProject = func(err error) error { return fmt.Errorf(errFailedCreateProjectFmt, err) }
	errFailedGetProject    = func(err error) error { return fmt.Errorf(errFailedGetProjectFmt, err) }
	errFailedListProjects  = func(err error) error { return fmt.Errorf(errFailedListProjectsFmt, err) }
	errFailedScanProject   = func(err error) error { return fmt.Errorf(errFailedScanProjectFmt, err) }
	errFailedUpdateProject = func(err error) error { return fmt.Errorf(errFailedUpdateProjectFmt, err) }

	errFailedCreateEntry  = func(err error) error { return fmt.Errorf(errFailedCreateEntryFmt, err) }
	errFailedGetEntry     = func(err error) error { return fmt.Errorf(errFailedGetEntryFmt, err) }
	errFailedListEntries  = func(err error) error { return fmt.Errorf(errFailedListEntriesFmt, err) }
	errFailedScanEntry    = func(err error) error { return fmt.Errorf(errFailedScanEntryFmt, err) }
	errFailedUpdateEntry  = func(err error) error { return fmt.Errorf(errFailedUpdateEntryFmt, err) }
	errFailedDeleteEntry  = func(err error) error { return fmt.Errorf(errFailedDeleteEntryFmt, err) }
	errFailedPurgeEntries = func(err error) error { return fmt.Errorf(errFailedPurgeEntriesFmt, err) }
	errFailedHistory      = func(err error) error { return fmt.Errorf(errFailedHistoryFmt, err) }

	errFailedCreatePayPeriod  = func(err error) error { return fmt.Errorf(errFailedCreatePayPeriodFmt, err) }
	errFailedGetPayPeriod     = func(err error) error { return fmt.Errorf(errFailedGetPayPeriodFmt, err) }
	errFailedListPayPeriods   = func(err error) error { return fmt.Errorf(errFailedListPayPeriodsFmt, err) }
	errFailedScanPayPeriod    = func(err error) error { return fmt.Errorf(errFailedScanPayPeriodFmt, err) }
	errFailedUpdatePayPeriod  = func(err error) error { return fmt.Errorf(errFailedUpdatePayPeriodFmt, err) }
	errFailedDeletePayPeriod  = func(err error) error { return fmt.Errorf(errFailedDeletePayPeriodFmt, err) }
	errFailedMaxPeriodNumber  = func(err error) error { return fmt.Errorf(errFailedMaxPeriodNumberFmt, err) }
	errFailedCountYear        = func(err error) error { return fmt.Errorf(errFailedCountYearFmt, err) }
	errFailedStartTransaction = func(err error) error { return fmt.Errorf(errFailedStartTransactionFmt, err) }
	errFailedCommitTransaction = func(err error) error { return fmt.Errorf(errFailedCommitTransactionFmt, err) }

	errFailedCreateLink = func(err error) error { return fmt.Errorf(errFailedCreateLinkFmt, err) }
	errFailedGetLink    = func(err error) error { return fmt.Errorf(errFailedGetLinkFmt, err) }
	errFailedListLinks  = func(err error) error { return fmt.Errorf(errFailedListLinksFmt, err) }
	errFailedScanLink   = func(err error) error { return fmt.Errorf(errFailedScanLinkFmt, err) }
	errFailedUpdateLink = func(err error) error { return fmt.Errorf(errFailedUpdateLinkFmt, err) }
	errFailedDeleteLink = func(err error) error { return fmt.Errorf(errFailedDeleteLinkFmt, err) }

	errFailedCreateScript = func(err error) error { return fmt.Errorf(errFailedCreateScriptFmt, err) }
	errFailedGetScript    = func(err error) error { return fmt.Errorf(errFailedGetScriptFmt, err) }
	errFailedListScripts  = func(err error) error { return fmt.Errorf(errFailedListScriptsFmt, err) }
	errFailedScanScript   = func(err error) error { return fmt.Errorf(errFailedScanScriptFmt, err) }
	errFailedUpdateScript = func(err error) error { return fmt.Errorf(errFailedUpdateScriptFmt, err) }
)
