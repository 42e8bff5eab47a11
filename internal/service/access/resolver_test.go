package access

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type fakeProjects struct {
	project *model.Project
	err     error
}

func (f *fakeProjects) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	return f.project, f.err
}

type fakeMembers struct {
	member *model.ProjectMember
	err    error
}

func (f *fakeMembers) Find(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	return f.member, f.err
}

type fakeUsers struct {
	user *model.User
	err  error
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return f.user, f.err
}

func newTestResolver(p *fakeProjects, m *fakeMembers, u *fakeUsers, superAdmins []string) *Resolver {
	if u == nil {
		u = &fakeUsers{}
	}
	return NewResolver(p, m, u, superAdmins, zap.NewNop())
}

func TestResolveRole_OwnerShortCircuitsMembership(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 1, OwnerID: 7}}
	// Conflicting membership row says VIEW_ONLY; ownership must win.
	members := &fakeMembers{member: &model.ProjectMember{ProjectID: 1, UserID: 7, Role: model.RoleViewOnly}}

	r := newTestResolver(projects, members, nil, nil)
	role, ok := r.ResolveRole(context.Background(), 1, 7)
	if !ok {
		t.Fatal("expected access for project owner")
	}
	if role != model.RoleOwner {
		t.Errorf("role = %s, want OWNER", role)
	}
}

func TestResolveRole_MembershipRole(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 1, OwnerID: 7}}
	members := &fakeMembers{member: &model.ProjectMember{ProjectID: 1, UserID: 9, Role: model.RoleContractor}}

	r := newTestResolver(projects, members, nil, nil)
	role, ok := r.ResolveRole(context.Background(), 1, 9)
	if !ok {
		t.Fatal("expected access for member")
	}
	if role != model.RoleContractor {
		t.Errorf("role = %s, want CONTRACTOR", role)
	}
}

func TestResolveRole_NoMembershipDenies(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 1, OwnerID: 7}}
	members := &fakeMembers{}

	r := newTestResolver(projects, members, nil, nil)
	if _, ok := r.ResolveRole(context.Background(), 1, 9); ok {
		t.Error("expected no access without membership")
	}
}

func TestResolveRole_StoreErrorFailsClosed(t *testing.T) {
	storeErr := errors.New("connection reset")

	r := newTestResolver(&fakeProjects{err: storeErr}, &fakeMembers{}, nil, nil)
	if _, ok := r.ResolveRole(context.Background(), 1, 7); ok {
		t.Error("project read error must deny access")
	}

	r = newTestResolver(
		&fakeProjects{project: &model.Project{ID: 1, OwnerID: 7}},
		&fakeMembers{err: storeErr},
		nil, nil,
	)
	if _, ok := r.ResolveRole(context.Background(), 1, 9); ok {
		t.Error("membership read error must deny access")
	}
}

func TestResolveRole_MissingProjectDenies(t *testing.T) {
	r := newTestResolver(&fakeProjects{}, &fakeMembers{}, nil, nil)
	if _, ok := r.ResolveRole(context.Background(), 42, 7); ok {
		t.Error("expected no access for missing project")
	}
}

func TestResolveRole_UnknownStoredRoleDenies(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 1, OwnerID: 7}}
	members := &fakeMembers{member: &model.ProjectMember{ProjectID: 1, UserID: 9, Role: "INTERN"}}

	r := newTestResolver(projects, members, nil, nil)
	if _, ok := r.ResolveRole(context.Background(), 1, 9); ok {
		t.Error("unknown stored role must not grant access")
	}
}

func TestResolveRole_SuperAdminIsOwnerEverywhere(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 1, OwnerID: 7}}
	users := &fakeUsers{user: &model.User{ID: 99, Email: "ops@example.com"}}

	r := newTestResolver(projects, &fakeMembers{}, users, []string{"ops@example.com"})
	role, ok := r.ResolveRole(context.Background(), 1, 99)
	if !ok || role != model.RoleOwner {
		t.Errorf("super admin resolved to (%s, %v), want (OWNER, true)", role, ok)
	}
}

func TestPermissions_DeniedWithoutRole(t *testing.T) {
	r := newTestResolver(&fakeProjects{}, &fakeMembers{}, nil, nil)
	perms, ok := r.Permissions(context.Background(), 1, 9)
	if ok {
		t.Fatal("expected denial for user without role")
	}
	if perms != (PermissionSet{}) {
		t.Errorf("denied permissions = %+v, want zero set", perms)
	}
}
