package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/domain"
	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/repository"
)

const strongTestPassword = "Sup3r!SecurePass#7890"

type mockAccountRepository struct {
	createErr      error
	createCalls    int
	createdAccount domain.Account

	getByIDResult *domain.Account
	getByIDErr    error
	getByIDCalls  int

	getByEmailResult *domain.Account
	getByEmailErr    error
	getByEmailCalls  int

	getByStudentIDResult *domain.Account
	getByStudentIDErr    error
	getByStudentIDCalls  int

	appendWarningErr   error
	appendWarningCalls int
	lastWarning        domain.Warning

	listWarningsResult []domain.Warning
	listWarningsErr    error
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{
		getByIDErr:        repository.ErrNotFound,
		getByEmailErr:     repository.ErrNotFound,
		getByStudentIDErr: repository.ErrNotFound,
	}
}

func (m *mockAccountRepository) Create(_ context.Context, account domain.Account) error {
	m.createCalls++
	m.createdAccount = account
	return m.createErr
}

func (m *mockAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.getByIDCalls++
	if m.getByIDResult != nil {
		out := *m.getByIDResult
		return &out, nil
	}
	return nil, m.getByIDErr
}

func (m *mockAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.getByEmailCalls++
	if m.getByEmailResult != nil {
		out := *m.getByEmailResult
		return &out, nil
	}
	return nil, m.getByEmailErr
}

func (m *mockAccountRepository) GetByStudentID(_ context.Context, studentID string) (*domain.Account, error) {
	m.getByStudentIDCalls++
	if m.getByStudentIDResult != nil {
		out := *m.getByStudentIDResult
		return &out, nil
	}
	return nil, m.getByStudentIDErr
}

func (m *mockAccountRepository) AppendWarning(_ context.Context, warning domain.Warning) error {
	m.appendWarningCalls++
	m.lastWarning = warning
	return m.appendWarningErr
}

func (m *mockAccountRepository) ListWarnings(_ context.Context, _ string) ([]domain.Warning, error) {
	if m.listWarningsErr != nil {
		return nil, m.listWarningsErr
	}
	out := make([]domain.Warning, len(m.listWarningsResult))
	copy(out, m.listWarningsResult)
	return out, nil
}

func (m *mockAccountRepository) Count(context.Context, port.AccountFilter) (int, error) {
	return 0, errors.New("unexpected call: Count")
}

type mockApplicationRepository struct {
	createVerificationErr   error
	createVerificationCalls int
	createdVerification     domain.VerificationApplication

	getVerificationResult *domain.VerificationApplication
	getVerificationErr    error

	approveVerificationErr   error
	approveVerificationCalls int
	approvedAccount          domain.Account

	rejectVerificationErr   error
	rejectVerificationCalls int
	lastRejectReason        string

	createUpgradeErr   error
	createUpgradeCalls int
	createdUpgrade     domain.UpgradeApplication

	getUpgradeResult *domain.UpgradeApplication
	getUpgradeErr    error

	pendingUpgradeResult *domain.UpgradeApplication
	pendingUpgradeErr    error

	approveUpgradeErr   error
	approveUpgradeCalls int

	rejectUpgradeErr   error
	rejectUpgradeCalls int
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{
		getVerificationErr: repository.ErrNotFound,
		getUpgradeErr:      repository.ErrNotFound,
		pendingUpgradeErr:  repository.ErrNotFound,
	}
}

func (m *mockApplicationRepository) CreateVerification(_ context.Context, app domain.VerificationApplication) error {
	m.createVerificationCalls++
	m.createdVerification = app
	return m.createVerificationErr
}

func (m *mockApplicationRepository) GetVerificationByID(_ context.Context, _ string) (*domain.VerificationApplication, error) {
	if m.getVerificationResult != nil {
		out := *m.getVerificationResult
		return &out, nil
	}
	return nil, m.getVerificationErr
}

func (m *mockApplicationRepository) ListVerifications(context.Context, port.ApplicationFilter) ([]domain.VerificationApplication, error) {
	return nil, errors.New("unexpected call: ListVerifications")
}

func (m *mockApplicationRepository) ApproveVerification(_ context.Context, _, _ string, _ time.Time, account domain.Account) error {
	m.approveVerificationCalls++
	m.approvedAccount = account
	return m.approveVerificationErr
}

func (m *mockApplicationRepository) RejectVerification(_ context.Context, _, _, reason string, _ time.Time) error {
	m.rejectVerificationCalls++
	m.lastRejectReason = reason
	return m.rejectVerificationErr
}

func (m *mockApplicationRepository) CountVerifications(context.Context, port.ApplicationFilter) (int, error) {
	return 0, errors.New("unexpected call: CountVerifications")
}

func (m *mockApplicationRepository) CreateUpgrade(_ context.Context, app domain.UpgradeApplication) error {
	m.createUpgradeCalls++
	m.createdUpgrade = app
	return m.createUpgradeErr
}

func (m *mockApplicationRepository) GetUpgradeByID(_ context.Context, _ string) (*domain.UpgradeApplication, error) {
	if m.getUpgradeResult != nil {
		out := *m.getUpgradeResult
		return &out, nil
	}
	return nil, m.getUpgradeErr
}

func (m *mockApplicationRepository) GetPendingUpgradeByAccount(_ context.Context, _ string) (*domain.UpgradeApplication, error) {
	if m.pendingUpgradeResult != nil {
		out := *m.pendingUpgradeResult
		return &out, nil
	}
	return nil, m.pendingUpgradeErr
}

func (m *mockApplicationRepository) ListUpgrades(context.Context, port.ApplicationFilter) ([]domain.UpgradeApplicationView, error) {
	return nil, errors.New("unexpected call: ListUpgrades")
}

func (m *mockApplicationRepository) ApproveUpgrade(_ context.Context, _, _, _ string, _ time.Time) error {
	m.approveUpgradeCalls++
	return m.approveUpgradeErr
}

func (m *mockApplicationRepository) RejectUpgrade(_ context.Context, _, _, reason string, _ time.Time) error {
	m.rejectUpgradeCalls++
	m.lastRejectReason = reason
	return m.rejectUpgradeErr
}

func (m *mockApplicationRepository) CountUpgrades(context.Context, port.ApplicationFilter) (int, error) {
	return 0, errors.New("unexpected call: CountUpgrades")
}

type mockReportRepository struct {
	createErr     error
	createCalls   int
	createdReport domain.Report

	getByIDResult *domain.Report
	getByIDErr    error

	resolveErr    error
	resolveCalls  int
	resolvedWith  domain.ReportStatus
	resolvedNote  string
	resolvedBy    string
	resolvedAtSet time.Time

	resolveSuspendErr   error
	resolveSuspendCalls int
	suspendedDriverID   string
}

func newMockReportRepository() *mockReportRepository {
	return &mockReportRepository{getByIDErr: repository.ErrNotFound}
}

func (m *mockReportRepository) Create(_ context.Context, report domain.Report) error {
	m.createCalls++
	m.createdReport = report
	return m.createErr
}

func (m *mockReportRepository) GetByID(_ context.Context, _ string) (*domain.Report, error) {
	if m.getByIDResult != nil {
		out := *m.getByIDResult
		return &out, nil
	}
	return nil, m.getByIDErr
}

func (m *mockReportRepository) List(context.Context, port.ReportFilter) ([]domain.ReportView, error) {
	return nil, errors.New("unexpected call: List")
}

func (m *mockReportRepository) Resolve(_ context.Context, _ string, status domain.ReportStatus, note, reviewer string, at time.Time) error {
	m.resolveCalls++
	m.resolvedWith = status
	m.resolvedNote = note
	m.resolvedBy = reviewer
	m.resolvedAtSet = at
	return m.resolveErr
}

func (m *mockReportRepository) ResolveWithSuspension(_ context.Context, _ string, driverID, note, reviewer string, at time.Time) error {
	m.resolveSuspendCalls++
	m.suspendedDriverID = driverID
	m.resolvedWith = domain.ReportAccountDeleted
	m.resolvedNote = note
	m.resolvedBy = reviewer
	m.resolvedAtSet = at
	return m.resolveSuspendErr
}

func (m *mockReportRepository) Count(context.Context, port.ReportFilter) (int, error) {
	return 0, errors.New("unexpected call: Count")
}

type mockRideRepository struct {
	createErr   error
	createCalls int
	createdRide domain.Ride

	getByIDResult *domain.Ride
	getByIDErr    error

	unfinishedResult []domain.Ride
	unfinishedErr    error
	unfinishedCalls  int

	completeErr   error
	completeCalls int
	completedID   string

	cancelCalls   []string
	cancelErrs    map[string]error
	cancelNoOpIDs map[string]bool
}

func newMockRideRepository() *mockRideRepository {
	return &mockRideRepository{
		getByIDErr:    repository.ErrNotFound,
		cancelErrs:    map[string]error{},
		cancelNoOpIDs: map[string]bool{},
	}
}

func (m *mockRideRepository) Create(_ context.Context, ride domain.Ride) error {
	m.createCalls++
	m.createdRide = ride
	return m.createErr
}

func (m *mockRideRepository) GetByID(_ context.Context, _ string) (*domain.Ride, error) {
	if m.getByIDResult != nil {
		out := *m.getByIDResult
		return &out, nil
	}
	return nil, m.getByIDErr
}

func (m *mockRideRepository) List(context.Context, port.RideFilter) ([]domain.Ride, error) {
	return nil, errors.New("unexpected call: List")
}

func (m *mockRideRepository) ListUnfinishedByDriver(_ context.Context, _ string) ([]domain.Ride, error) {
	m.unfinishedCalls++
	if m.unfinishedErr != nil {
		return nil, m.unfinishedErr
	}
	out := make([]domain.Ride, len(m.unfinishedResult))
	copy(out, m.unfinishedResult)
	return out, nil
}

func (m *mockRideRepository) Complete(_ context.Context, id string) error {
	m.completeCalls++
	m.completedID = id
	return m.completeErr
}

func (m *mockRideRepository) Cancel(_ context.Context, id string) (bool, error) {
	m.cancelCalls = append(m.cancelCalls, id)
	if err, ok := m.cancelErrs[id]; ok {
		return false, err
	}
	if m.cancelNoOpIDs[id] {
		return false, nil
	}
	return true, nil
}

func (m *mockRideRepository) Count(context.Context, port.RideFilter) (int, error) {
	return 0, errors.New("unexpected call: Count")
}

type mockEvidenceStore struct {
	storeErr   error
	storeCalls int
	lastKey    string
	lastMime   string
	lastSize   int
}

func (m *mockEvidenceStore) Store(_ context.Context, key string, data []byte, mimeType string) (string, error) {
	m.storeCalls++
	m.lastKey = key
	m.lastMime = mimeType
	m.lastSize = len(data)
	if m.storeErr != nil {
		return "", m.storeErr
	}
	return "/uploads/" + key, nil
}

type mockEventPublisher struct {
	accountCreated   []domain.AccountCreatedEvent
	driverUpgraded   []domain.DriverUpgradedEvent
	warningIssued    []domain.WarningIssuedEvent
	accountSuspended []domain.AccountSuspendedEvent
	reportResolved   []domain.ReportResolvedEvent
	publishErr       error
}

func (m *mockEventPublisher) PublishAccountCreated(_ context.Context, event domain.AccountCreatedEvent) error {
	m.accountCreated = append(m.accountCreated, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishDriverUpgraded(_ context.Context, event domain.DriverUpgradedEvent) error {
	m.driverUpgraded = append(m.driverUpgraded, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishWarningIssued(_ context.Context, event domain.WarningIssuedEvent) error {
	m.warningIssued = append(m.warningIssued, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishAccountSuspended(_ context.Context, event domain.AccountSuspendedEvent) error {
	m.accountSuspended = append(m.accountSuspended, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishReportResolved(_ context.Context, event domain.ReportResolvedEvent) error {
	m.reportResolved = append(m.reportResolved, event)
	return m.publishErr
}

var (
	_ port.AccountRepository     = (*mockAccountRepository)(nil)
	_ port.ApplicationRepository = (*mockApplicationRepository)(nil)
	_ port.ReportRepository      = (*mockReportRepository)(nil)
	_ port.RideRepository        = (*mockRideRepository)(nil)
	_ port.EvidenceStore         = (*mockEvidenceStore)(nil)
	_ port.EventPublisher        = (*mockEventPublisher)(nil)
)

func validEvidence() EvidenceFile {
	return EvidenceFile{
		Name:     "student-card.jpg",
		MIMEType: "image/jpeg",
		Data:     []byte("jpeg-bytes"),
	}
}
