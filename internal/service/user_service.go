package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"user-center/internal/cache"
	"user-center/internal/common"
	"user-center/internal/dto"
	"user-center/internal/models"
	"user-center/internal/repository"
	"user-center/internal/session"
	"user-center/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	minAccountLength  = 4
	minPasswordLength = 8
)

// UserService 用户服务
type UserService struct {
	repo   *repository.UserRepository
	cache  *cache.PaginationCache
	salt   string
	logger *logrus.Logger
}

// NewUserService 创建用户服务
func NewUserService(repo *repository.UserRepository, pageCache *cache.PaginationCache, salt string, logger *logrus.Logger) *UserService {
	return &UserService{
		repo:   repo,
		cache:  pageCache,
		salt:   salt,
		logger: logger,
	}
}

func paramsError(description string) error {
	return common.NewBusinessError(common.ParamsError, description)
}

// validateCredentials 注册与登录共用的账号密码校验
func validateCredentials(account string, passwords ...string) error {
	if utils.IsAnyBlank(append([]string{account}, passwords...)...) {
		return paramsError("参数为空")
	}
	if utf8.RuneCountInString(account) < minAccountLength {
		return paramsError("用户账号过短")
	}
	for _, password := range passwords {
		if utf8.RuneCountInString(password) < minPasswordLength {
			return paramsError("用户密码过短")
		}
	}
	if utils.HasSpecialChar(account) {
		return paramsError("账号存在特殊符号")
	}
	return nil
}

// Register 用户注册, 返回新用户ID
func (s *UserService) Register(ctx context.Context, account, password, confirmPassword string) (int64, error) {
	if err := validateCredentials(account, password, confirmPassword); err != nil {
		return 0, err
	}
	if password != confirmPassword {
		return 0, paramsError("密码与确认密码不一致")
	}

	user := models.User{
		UserAccount:  account,
		UserPassword: utils.EncryptPassword(s.salt, password),
	}

	// 查重与插入在同一事务中, 并发注册由唯一索引兜底
	err := s.repo.Transaction(ctx, func(repo *repository.UserRepository) error {
		exists, err := repo.ExistsByAccount(ctx, account)
		if err != nil {
			return fmt.Errorf("查询账号失败: %w", err)
		}
		if exists {
			return paramsError("账号重复")
		}
		if err := repo.Create(ctx, &user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return paramsError("账号重复")
			}
			return fmt.Errorf("创建用户失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"user_account": account,
	}).Info("用户注册成功")

	return user.ID, nil
}

// Login 用户登录, 成功后将脱敏用户写入会话
func (s *UserService) Login(ctx context.Context, account, password string, sess session.Handle) (*models.SafetyUser, error) {
	if err := validateCredentials(account, password); err != nil {
		return nil, err
	}

	digest := utils.EncryptPassword(s.salt, password)
	user, err := s.repo.GetByAccountAndPassword(ctx, account, digest)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 不区分账号不存在与密码错误
		s.logger.WithField("user_account", account).Info("用户登录失败, 账号和密码不匹配")
		return nil, paramsError("账号和密码不匹配")
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	safetyUser := models.NewSafetyUser(user)
	if err := session.SetLoginUser(sess, safetyUser); err != nil {
		return nil, err
	}

	return safetyUser, nil
}

// GetLoginUser 获取会话中的登录用户
func (s *UserService) GetLoginUser(sess session.Handle) (*models.SafetyUser, error) {
	user, err := session.LoginUser(sess)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NewBusinessError(common.NotLogin, "用户未登录")
	}
	return user, nil
}

// IsAdmin 当前用户是否为管理员, 未登录返回 false
func (s *UserService) IsAdmin(sess session.Handle) bool {
	user, err := session.LoginUser(sess)
	if err != nil {
		s.logger.WithError(err).Warn("读取登录用户失败")
		return false
	}
	return user.IsAdmin()
}

// GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.SafetyUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, paramsError("用户不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return models.NewSafetyUser(user), nil
}

// GetCurrentUser 获取当前登录用户的最新数据
func (s *UserService) GetCurrentUser(ctx context.Context, sess session.Handle) (*models.SafetyUser, error) {
	loginUser, err := s.GetLoginUser(sess)
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, loginUser.ID)
}

// SearchUsersByUsername 按用户名搜索用户
func (s *UserService) SearchUsersByUsername(ctx context.Context, username string) ([]models.SafetyUser, error) {
	users, err := s.repo.SearchByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("搜索用户失败: %w", err)
	}
	return models.NewSafetyUsers(users), nil
}

// GetPaginatedUsers 获取推荐用户分页
//
// 优先读取当前用户的缓存, 命中时直接返回, 不校验分页参数
func (s *UserService) GetPaginatedUsers(ctx context.Context, sess session.Handle, pageNumber, pageSize int, filters ...repository.Filter) (*cache.UserPage, error) {
	loginUser, err := s.GetLoginUser(sess)
	if err != nil {
		return nil, err
	}

	cached, ok, err := s.cache.Get(ctx, loginUser.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		return cached, nil
	}

	page, err := s.PaginateUsers(ctx, pageNumber, pageSize, filters...)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, loginUser.ID, page); err != nil {
		return nil, err
	}
	return page, nil
}

// PaginateUsers 分页查询用户(不走缓存)
func (s *UserService) PaginateUsers(ctx context.Context, pageNumber, pageSize int, filters ...repository.Filter) (*cache.UserPage, error) {
	if pageNumber <= 0 || pageSize <= 0 {
		return nil, paramsError("参数需为正整数")
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("统计用户失败: %w", err)
	}
	users, err := s.repo.Page(ctx, (pageNumber-1)*pageSize, pageSize, filters...)
	if err != nil {
		return nil, fmt.Errorf("分页查询用户失败: %w", err)
	}

	return dto.NewPagination(models.NewSafetyUsers(users), total, pageNumber, pageSize), nil
}

// SearchUsersByTags 按标签搜索用户
//
// 用户标签需包含全部查询标签, 不区分大小写. 在内存中过滤, 没有标签的用户不会返回
func (s *UserService) SearchUsersByTags(ctx context.Context, tagNames []string) ([]models.SafetyUser, error) {
	if utils.IsEmpty(tagNames) {
		return nil, paramsError("参数为空")
	}

	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	wanted := make(map[string]struct{}, len(tagNames))
	for _, name := range tagNames {
		wanted[strings.ToLower(name)] = struct{}{}
	}

	matched := make([]models.User, 0)
	for _, user := range users {
		if user.Tags == nil {
			continue
		}
		tags, err := utils.JSONToStringList(*user.Tags)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"user_id": user.ID,
				"tags":    *user.Tags,
			}).Warn("用户标签格式错误")
			continue
		}
		if containsAll(tags, wanted) {
			matched = append(matched, user)
		}
	}

	return models.NewSafetyUsers(matched), nil
}

func containsAll(tags []string, wanted map[string]struct{}) bool {
	have := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		have[strings.ToLower(tag)] = struct{}{}
	}
	for tag := range wanted {
		if _, ok := have[tag]; !ok {
			return false
		}
	}
	return true
}

// UpdateUser 更新用户信息, 返回影响行数
//
// 管理员可以修改任意用户, 普通用户只能修改自己
func (s *UserService) UpdateUser(ctx context.Context, req *dto.UserUpdateRequest, sess session.Handle) (int64, error) {
	if req.ID <= 0 {
		return 0, paramsError("用户ID错误")
	}

	loginUser, err := s.GetLoginUser(sess)
	if err != nil {
		return 0, err
	}
	if !loginUser.IsAdmin() && loginUser.ID != req.ID {
		return 0, common.NewBusinessError(common.NoAuth, "没有权限修改用户数据")
	}

	if req.Tags != nil && *req.Tags != "" && !utils.IsStringListJSON(*req.Tags) {
		return 0, paramsError(fmt.Sprintf("\"%s\" 不是序列化的字符串列表", *req.Tags))
	}

	var affected int64
	err = s.repo.Transaction(ctx, func(repo *repository.UserRepository) error {
		exists, err := repo.Query().Where("id = ?", req.ID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("查询用户失败: %w", err)
		}
		if !exists {
			return paramsError("修改用户不存在")
		}

		data := req.UpdateData()
		if len(data) == 0 {
			return paramsError("更新数据不能为空")
		}

		affected, err = repo.UpdateByID(ctx, req.ID, data)
		if err != nil {
			return fmt.Errorf("更新用户失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// DeleteUserByID 逻辑删除用户
func (s *UserService) DeleteUserByID(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, paramsError("删除用户ID需为正整数")
	}

	affected, err := s.repo.SoftDeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("删除用户失败: %w", err)
	}
	if affected == 0 {
		return false, paramsError("用户不存在")
	}

	s.logger.WithField("user_id", id).Info("用户已删除")
	return true, nil
}

// RestoreUserByID 恢复已删除的用户
//
// 账号在删除后被重新注册时无法恢复
func (s *UserService) RestoreUserByID(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, paramsError("恢复用户ID需为正整数")
	}

	err := s.repo.Transaction(ctx, func(repo *repository.UserRepository) error {
		user, err := repo.GetDeletedByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return paramsError("用户不存在")
		}
		if err != nil {
			return fmt.Errorf("查询用户失败: %w", err)
		}

		exists, err := repo.ExistsByAccount(ctx, user.UserAccount)
		if err != nil {
			return fmt.Errorf("查询账号失败: %w", err)
		}
		if exists {
			return paramsError("账号重复")
		}

		affected, err := repo.RestoreByID(ctx, id)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return paramsError("账号重复")
		}
		if err != nil {
			return fmt.Errorf("恢复用户失败: %w", err)
		}
		if affected == 0 {
			return paramsError("用户不存在")
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.WithField("user_id", id).Info("用户已恢复")
	return true, nil
}

// InitAdmin 初始化管理员账户, 已有管理员时跳过
func (s *UserService) InitAdmin(ctx context.Context, account, password, username string) error {
	exists, err := s.repo.ExistsAdmin(ctx)
	if err != nil {
		return fmt.Errorf("查询管理员失败: %w", err)
	}
	if exists {
		return nil
	}

	admin := &models.User{
		UserAccount:  account,
		UserPassword: utils.EncryptPassword(s.salt, password),
		UserRole:     models.AdminRole,
	}
	if username != "" {
		admin.Username = &username
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("管理员账号 %s 已被普通用户占用", account)
		}
		return fmt.Errorf("创建管理员失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      admin.ID,
		"user_account": account,
	}).Info("管理员账户已创建")
	return nil
}

// Logout 用户注销, 清空整个会话
func (s *UserService) Logout(sess session.Handle) (bool, error) {
	if !session.IsLogin(sess) {
		return false, common.NewBusinessError(common.NotLogin, "用户未登录")
	}

	sess.Clear()
	if err := sess.Save(); err != nil {
		return false, fmt.Errorf("保存会话失败: %w", err)
	}

	return !session.IsLogin(sess), nil
}
