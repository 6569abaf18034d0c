package config

// SafeErrorMessage 根据运行模式决定对外暴露的错误信息
// release 模式下返回 fallback，避免将内部错误详情泄露给客户端；
// debug 模式（或配置未初始化时，视为开发环境）返回真实错误
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
