// timetools 读取当前时间距 Unix 纪元的偏移量
package main

func main() {
	Execute()
}
