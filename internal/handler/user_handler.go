package handler

import (
	"errors"
	"io"
	"strconv"

	"user-center/internal/dto"
	"user-center/internal/service"
	"user-center/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// bindBody 绑定请求体, 请求体为空时调用 onEmpty 写入响应
func bindBody(c *gin.Context, obj interface{}, onEmpty func()) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			onEmpty()
			return false
		}
		utils.BadRequest(c, utils.FormatValidationError(err))
		return false
	}
	return true
}

// parseUserID 解析 user_id 查询参数
func parseUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.DefaultQuery("user_id", "0"), 10, 64)
	if err != nil || userID <= 0 {
		utils.BadRequest(c, "用户ID需为正整数")
		return 0, false
	}
	return userID, true
}

// Register 用户注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterRequest true "注册信息"
// @Success 200 {object} utils.Response{data=int64}
// @Router /user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.UserRegisterRequest
	if !bindBody(c, &req, func() { utils.NullRequest(c, "注册信息为空") }) {
		return
	}

	userID, err := h.userService.Register(c.Request.Context(), req.UserAccount, req.UserPassword, req.ConfirmPassword)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, userID)
}

// Login 用户登录
// @Summary 用户登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.UserLoginRequest true "登录信息"
// @Success 200 {object} utils.Response{data=models.SafetyUser}
// @Router /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.UserLoginRequest
	if !bindBody(c, &req, func() { utils.NullRequest(c, "登录信息为空") }) {
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.UserAccount, req.UserPassword, sessions.Default(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// Current 获取当前用户
// @Summary 获取当前用户
// @Tags 用户
// @Produce json
// @Success 200 {object} utils.Response{data=models.SafetyUser}
// @Router /user/current [get]
func (h *UserHandler) Current(c *gin.Context) {
	user, err := h.userService.GetCurrentUser(c.Request.Context(), sessions.Default(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// Logout 用户注销
// @Summary 用户注销
// @Tags 用户
// @Produce json
// @Success 200 {object} utils.Response{data=bool}
// @Router /user/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	ok, err := h.userService.Logout(sessions.Default(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, ok)
}

// Search 按用户名搜索用户(管理员)
// @Summary 搜索用户
// @Tags 用户
// @Produce json
// @Param username query string false "用户名"
// @Success 200 {object} utils.Response{data=[]models.SafetyUser}
// @Router /user/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.userService.SearchUsersByUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, users)
}

// Recommend 推荐用户分页
// @Summary 推荐用户
// @Tags 用户
// @Produce json
// @Param page_number query int true "页码"
// @Param page_size query int true "每页大小"
// @Success 200 {object} utils.Response{data=dto.Pagination[models.SafetyUser]}
// @Router /user/recommend [get]
func (h *UserHandler) Recommend(c *gin.Context) {
	var query dto.RecommendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "参数需为正整数")
		return
	}
	if query.PageNumber <= 0 || query.PageSize <= 0 {
		utils.BadRequest(c, "参数需为正整数")
		return
	}

	page, err := h.userService.GetPaginatedUsers(c.Request.Context(), sessions.Default(c), query.PageNumber, query.PageSize)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, page)
}

// SearchByTags 按标签搜索用户
// @Summary 标签搜索用户
// @Tags 用户
// @Produce json
// @Param tag_name_list query []string true "标签列表" collectionFormat(multi)
// @Success 200 {object} utils.Response{data=[]models.SafetyUser}
// @Router /user/search/tags [get]
func (h *UserHandler) SearchByTags(c *gin.Context) {
	var query dto.SearchTagsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	users, err := h.userService.SearchUsersByTags(c.Request.Context(), query.TagNameList)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, users)
}

// Update 更新用户信息
// @Summary 更新用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.UserUpdateRequest true "更新信息"
// @Success 200 {object} utils.Response{data=int64}
// @Router /user/update [post]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UserUpdateRequest
	if !bindBody(c, &req, func() { utils.BadRequest(c, "参数为空") }) {
		return
	}
	if req.ID <= 0 {
		utils.BadRequest(c, "用户ID需为正整数")
		return
	}

	affected, err := h.userService.UpdateUser(c.Request.Context(), &req, sessions.Default(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, affected)
}

// Delete 逻辑删除用户(管理员)
// @Summary 删除用户
// @Tags 用户
// @Produce json
// @Param user_id query int true "用户ID"
// @Success 200 {object} utils.Response{data=bool}
// @Router /user/delete [post]
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	deleted, err := h.userService.DeleteUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, deleted)
}

// Restore 恢复已删除的用户(管理员)
// @Summary 恢复用户
// @Tags 用户
// @Produce json
// @Param user_id query int true "用户ID"
// @Success 200 {object} utils.Response{data=bool}
// @Router /user/restore [post]
func (h *UserHandler) Restore(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	restored, err := h.userService.RestoreUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessResponse(c, restored)
}
