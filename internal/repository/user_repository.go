package repository

import (
	"context"
	"strings"

	"user-center/internal/models"

	"gorm.io/gorm"
)

// Filter 额外的查询条件
type Filter = func(*gorm.DB) *gorm.DB

// UserRepository 用户数据访问层
//
// 所有查询都经过 SoftDeleteQuery, 默认不包含已删除的用户
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户Repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Query 用户查询构造器
func (r *UserRepository) Query() *models.SoftDeleteQuery[models.User] {
	return models.NewSoftDeleteQuery[models.User](r.db)
}

// Transaction 在事务中执行
func (r *UserRepository) Transaction(ctx context.Context, fn func(repo *UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepository(tx))
	})
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// ExistsByAccount 账号是否已被未删除的用户占用
func (r *UserRepository) ExistsByAccount(ctx context.Context, account string) (bool, error) {
	return r.Query().Where("user_account = ?", account).Exists(ctx)
}

// GetByAccountAndPassword 根据账号和密码摘要获取用户
func (r *UserRepository) GetByAccountAndPassword(ctx context.Context, account, digest string) (*models.User, error) {
	return r.Query().
		Where("user_account = ? AND user_password = ?", account, digest).
		First(ctx)
}

// ExistsAdmin 是否已有管理员
func (r *UserRepository) ExistsAdmin(ctx context.Context) (bool, error) {
	return r.Query().Where("user_role = ?", models.AdminRole).Exists(ctx)
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.Query().Where("id = ?", id).First(ctx)
}

// SearchByUsername 用户名模糊查询(不区分大小写), 用户名为空时返回全部
func (r *UserRepository) SearchByUsername(ctx context.Context, username string) ([]models.User, error) {
	query := r.Query()
	if strings.TrimSpace(username) != "" {
		pattern := "%" + escapeLike(strings.ToLower(username)) + "%"
		query = query.Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern)
	}
	return query.Find(ctx)
}

// ListAll 获取全部用户
func (r *UserRepository) ListAll(ctx context.Context, filters ...Filter) ([]models.User, error) {
	return r.Query().Scopes(filters...).Find(ctx)
}

// Count 统计用户数
func (r *UserRepository) Count(ctx context.Context, filters ...Filter) (int64, error) {
	return r.Query().Scopes(filters...).Count(ctx)
}

// Page 分页获取用户
func (r *UserRepository) Page(ctx context.Context, offset, limit int, filters ...Filter) ([]models.User, error) {
	return r.Query().Scopes(filters...).Page(ctx, offset, limit)
}

// UpdateByID 更新用户字段
func (r *UserRepository) UpdateByID(ctx context.Context, id int64, data map[string]interface{}) (int64, error) {
	return r.Query().Where("id = ?", id).Updates(ctx, data)
}

// SoftDeleteByID 逻辑删除用户
func (r *UserRepository) SoftDeleteByID(ctx context.Context, id int64) (int64, error) {
	return r.Query().Where("id = ?", id).SoftDelete(ctx)
}

// RestoreByID 恢复已删除的用户
func (r *UserRepository) RestoreByID(ctx context.Context, id int64) (int64, error) {
	return r.Query().Where("id = ?", id).Restore(ctx)
}

// GetDeletedByID 获取已删除的用户
func (r *UserRepository) GetDeletedByID(ctx context.Context, id int64) (*models.User, error) {
	return r.Query().OnlyDeleted().Where("id = ?", id).First(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
